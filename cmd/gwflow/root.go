package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for gwflow.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gwflow",
		Short: "Groundwater potential gradient analyzer",
		Long: `gwflow performs spatially-distributed statistical inference of groundwater
potential: at every node of a grid covering a venue it fits a local conic
potential model to nearby well observations and derives flow-direction and
gradient statistics with directional confidence.

Well observations are imported once into a local SQLite store; venues are
defined in a .gwflow YAML file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
