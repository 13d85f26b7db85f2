// Package cmd implements the conductor command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conductor-cli/conductor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "conductor",
	Short: "Create git branches from your Jira tickets",
	Long: `Conductor connects Jira to your git workflow. It fetches the tickets
assigned to you in the current sprint, lets you pick one, and creates a
consistently named branch for it.

Getting started:
  1. Run 'conductor setup' to configure your Jira credentials
  2. Change into any git repository
  3. Run 'conductor branch' to create a branch from one of your tickets`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to the configuration file (default ~/.config/conductor/config.yaml)")

	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(versionCmd)
}

// configPath resolves the configuration file location from the --config
// flag, the CONDUCTOR_CONFIG environment variable, or the default.
func configPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	return config.DefaultPath()
}
