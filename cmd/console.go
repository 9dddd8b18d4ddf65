package cmd

import (
	"github.com/spf13/cobra"

	"donext/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the single-user console to-do app",
	Long:  "Starts an interactive in-memory to-do list on stdin/stdout. Nothing is persisted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		console.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
