package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/P4UL-M/copper/internal/loader"
	"github.com/P4UL-M/copper/internal/source"
	"github.com/P4UL-M/copper/internal/vm"
)

var (
	inputPath  string
	outputPath string
)

var runCmd = &cobra.Command{
	Use:     "run <file>",
	GroupID: "operations",
	Short:   "Load and interpret a .co or .bin program",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(cmd, args[0])
	},
}

func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "file to read IN values from (defaults to stdin)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "file to write OUT values to (defaults to stdout)")
}

// runFile orchestrates the full interpretation pipeline: load the source
// file, build the instruction/memory image, and execute it (spec §6: "run
// <file>: load and interpret").
func runFile(cmd *cobra.Command, path string) error {
	prog, err := source.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	res, err := loader.Load(prog)
	if err != nil {
		return err
	}

	in, closeIn, err := resolveInput(cmd)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := resolveOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	interp := vm.New(verbose, in, out)
	interp.Load(res)

	if debug {
		return interp.RunDebug()
	}
	return interp.Run()
}

// resolveInput opens --input if given, falling back to stdin, mirroring
// the teacher's resolveFilePath pattern (cmd/cli/cmd/x86_64/assemble_file.go).
func resolveInput(cmd *cobra.Command) (io.Reader, func(), error) {
	if inputPath == "" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	return f, func() { f.Close() }, nil
}

// resolveOutput opens --output if given, falling back to stdout.
func resolveOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	if outputPath == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	return f, func() { f.Close() }, nil
}
