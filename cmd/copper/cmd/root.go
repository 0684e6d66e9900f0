// Package cmd wires Copper's cobra CLI surface (spec §6): the run and
// export subcommands, global verbose/debug flags, and -h/-V.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:     "copper",
	Short:   "Copper assembler and VM",
	Long:    `Copper assembles and interprets programs for a small fixed-width register machine.`,
	Version: version,
}

// Execute runs the root command, exiting the process with status 1 on any
// error: usage, file, load or runtime (spec §6, Exit codes).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "operations",
		Title: "Operations",
	})

	// RUST_LOG/DEBUG_MODE are the external CLI's conventions for toggling
	// the core's single verbose/debug booleans (spec §6); the flags below
	// still take precedence when passed explicitly.
	_, rustLogSet := os.LookupEnv("RUST_LOG")
	_, debugModeSet := os.LookupEnv("DEBUG_MODE")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", rustLogSet, "enable verbose diagnostics")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", debugModeSet, "run in step-and-print debug mode")
	// -v is taken by --verbose, so the version flag is declared here with
	// the -V shorthand; cobra then uses it instead of its default one.
	rootCmd.Flags().BoolP("version", "V", false, "version for copper")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
}
