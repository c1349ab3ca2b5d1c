package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var logLevel string
	var logFile string

	var rootCmd = &cobra.Command{
		Use:   "contest-admin",
		Short: "Admin CLI for the contest evaluation service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(logLevel, logFile)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level [debug, info, warn, error]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")

	rootCmd.AddCommand(newProblemCmd())
	rootCmd.AddCommand(newContestCmd())
	rootCmd.AddCommand(newStandingsCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newDdbCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
