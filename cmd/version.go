package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/conductor-cli/conductor/internal/config"
	"github.com/conductor-cli/conductor/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the conductor version",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("conductor v%s\n", version.Current)

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	if !check {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client := version.NewClient(config.GithubToken())
	latest, err := client.Latest(ctx)
	if err != nil {
		return fmt.Errorf("could not check for updates: %w", err)
	}

	fmt.Printf("Latest release:  v%s\n", latest)
	if version.IsNewer(version.Current, latest) {
		fmt.Println("\nUpdate available!")
		fmt.Println("See what's new: " + version.ReleasesURL)
	} else {
		fmt.Println("\nYou're up to date.")
	}
	return nil
}
