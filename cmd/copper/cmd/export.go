package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/P4UL-M/copper/internal/exporter"
	"github.com/P4UL-M/copper/internal/loader"
	"github.com/P4UL-M/copper/internal/source"
)

var exportCmd = &cobra.Command{
	Use:     "export <file>",
	GroupID: "operations",
	Short:   "Assemble a .co file into a <file-stem>.bin",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportFile(args[0])
	},
}

// exportFile loads path and writes its assembled binary form to
// <file-stem>.bin (spec §6: "export <file>: assemble to <file-stem>.bin").
func exportFile(path string) error {
	prog, err := source.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	res, err := loader.Load(prog)
	if err != nil {
		return err
	}

	outPath := stem(path) + ".bin"
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	return exporter.Export(res, out)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
