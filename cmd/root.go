package main

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "buildermatch",
	Short: "Match builders with projects",
	Long: `buildermatch scores builders against recruiting projects on skills, goals,
reputation, activity and team diversity.

Run "serve" for the HTTP service or "rank" to score a seed file offline.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $BUILDERMATCH_CONFIG)")
}
