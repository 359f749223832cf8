package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Customer purchase behavior dashboard",
		Long: "Loads a retail transaction CSV, cleans it, and serves an interactive\n" +
			"dashboard of purchase behavior: top sellers, revenue breakdowns, a\n" +
			"monthly trend with a linear forecast, and RFM customer scores.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}
