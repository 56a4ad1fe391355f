// Command leavectl runs the attendance engine offline and issues operator tokens.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// optional; flags and the environment still apply without it
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "leavectl",
		Short:         "Attendance spreadsheet tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newAnalyzeCmd(), newTokenCmd())
	return rootCmd
}
