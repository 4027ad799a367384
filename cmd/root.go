// Package cmd defines and implements the CLI commands for the bookscout
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookscout",
		Short: "Exports rated Open Library works for a list of authors.",
		Long: `bookscout resolves each author id in an input list against the
Open Library API, collects a bounded set of their published works, enriches
every work with its community rating, and writes the result as a CSV file, a
streaming HTML table, and a ranked console summary.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env vars with the BOOKSCOUT prefix always apply)")
	cmd.AddCommand(newExportCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
