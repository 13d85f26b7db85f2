package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/conductor-cli/conductor/internal/branch"
	"github.com/conductor-cli/conductor/internal/config"
	"github.com/conductor-cli/conductor/internal/git"
	"github.com/conductor-cli/conductor/internal/jira"
	"github.com/conductor-cli/conductor/internal/logging"
	"github.com/conductor-cli/conductor/internal/tui"
	"github.com/conductor-cli/conductor/internal/version"
	"github.com/conductor-cli/conductor/pkg/models"
)

// updateCheckTimeout bounds the post-workflow release lookup so a slow
// network never holds the terminal hostage.
const updateCheckTimeout = 5 * time.Second

// summaryDisplayMax is the longest summary shown in a picker row before it
// is shortened with an ellipsis.
const summaryDisplayMax = 53

var branchCmd = &cobra.Command{
	Use:     "branch",
	Aliases: []string{"b"},
	Short:   "Create a git branch from one of your Jira tickets",
	Long: `Fetches the Jira tickets assigned to you in the current sprint, lets you
pick one, and creates (or checks out) a branch named after it. Run it from
inside the repository you want to branch in.`,
	RunE: runBranch,
}

func runBranch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return describeConfigError(err, path)
	}
	token, err := config.LoadToken(path)
	if err != nil {
		return describeConfigError(err, path)
	}

	fmt.Println("Connecting to Jira...")
	client, err := jira.NewClient(cfg.Server, cfg.Username, token)
	if err != nil {
		return err
	}
	if err := client.Verify(ctx); err != nil {
		return err
	}

	fmt.Printf("Fetching tickets for %s in the current sprint...\n", cfg.Username)
	tickets, capped, err := client.SearchTickets(ctx, jira.BuildJQL(cfg), cfg.MaxResults)
	if err != nil {
		if errors.Is(err, jira.ErrNoTickets) {
			fmt.Println("No tickets found matching the criteria.")
			return nil
		}
		return err
	}
	fmt.Printf("Found %d ticket(s)\n\n", len(tickets))
	if capped {
		logging.Warn("result list hit the limit, raise max_results to see more",
			"max_results", cfg.MaxResults)
	}

	ticket, err := pickTicket(tickets)
	if err != nil {
		return abortOnCancel(err)
	}

	name, warnings := branch.Builder{}.Build(ticket, cfg)
	for _, warning := range warnings {
		logging.Warn(warning)
	}

	fmt.Printf("\nGenerated branch name: %s\n", name)
	if cfg.UseBranchPrefixes {
		fmt.Println("Branch prefixes are enabled (edit the config file to change this)")
	} else {
		fmt.Println("Branch prefixes are disabled (edit the config file to change this)")
	}

	name, err = tui.Input("Edit the branch name if needed, then press enter:", name)
	if err != nil {
		return abortOnCancel(err)
	}
	if name == "" {
		return abortOnCancel(tui.ErrCancelled)
	}

	repo, err := git.NewRepository(ctx, ".")
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return fmt.Errorf("%w: run conductor from inside the repository you want to branch in", err)
		}
		return err
	}

	clean, err := repo.IsClean(ctx)
	if err != nil {
		return err
	}
	if !clean {
		fmt.Println("Warning: you have uncommitted changes.")
		proceed, err := tui.Confirm("Proceed anyway?", false)
		if err != nil {
			return abortOnCancel(err)
		}
		if !proceed {
			return abortOnCancel(tui.ErrCancelled)
		}
	}

	if err := realizeBranch(ctx, repo, name); err != nil {
		return abortOnCancel(err)
	}

	printBranchSummary(ticket, name, path)
	printUpdateNotice(ctx, path)
	return nil
}

// pickTicket shows the selection list, with a final row to back out.
func pickTicket(tickets []models.Ticket) (models.Ticket, error) {
	options := make([]string, 0, len(tickets)+1)
	for i, ticket := range tickets {
		options = append(options, formatTicketRow(i+1, ticket))
	}
	options = append(options, "Cancel")

	choice, err := tui.Select("Select a ticket to create a branch for:", options)
	if err != nil {
		return models.Ticket{}, err
	}
	if choice == len(tickets) {
		return models.Ticket{}, tui.ErrCancelled
	}
	return tickets[choice], nil
}

// formatTicketRow renders one picker row: index, colored status badge,
// key, and a display-shortened summary.
func formatTicketRow(index int, ticket models.Ticket) string {
	summary := ticket.Summary
	if runes := []rune(summary); len(runes) > summaryDisplayMax {
		summary = string(runes[:50]) + "..."
	}
	return fmt.Sprintf("%2d. %s %s - %s", index, tui.StatusBadge(ticket.Status), ticket.Key, summary)
}

// realizeBranch creates or checks out the target branch, asking the user
// what to do when it already exists.
func realizeBranch(ctx context.Context, repo *git.Repository, name string) error {
	branches, err := repo.Branches(ctx)
	if err != nil {
		return err
	}
	active, err := repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	action, err := git.Decide(branches, active, name, func(target string) (git.ActionKind, error) {
		fmt.Printf("\nBranch '%s' already exists.\n", target)
		choice, err := tui.Select("What would you like to do?", []string{
			"Checkout the existing branch",
			"Cancel",
		})
		if err != nil {
			return git.ActionCancel, err
		}
		if choice == 0 {
			return git.ActionCheckout, nil
		}
		return git.ActionCancel, nil
	})
	if err != nil {
		return err
	}

	switch action.Kind {
	case git.ActionCreate:
		if err := repo.CreateBranch(ctx, name, action.Base); err != nil {
			return fmt.Errorf("failed to create branch: %w", err)
		}
		if err := repo.Checkout(ctx, name); err != nil {
			return fmt.Errorf("failed to checkout new branch: %w", err)
		}
		fmt.Printf("\nCreated and checked out new branch: %s\n", name)
	case git.ActionCheckout:
		if err := repo.Checkout(ctx, name); err != nil {
			return fmt.Errorf("failed to checkout branch: %w", err)
		}
		fmt.Printf("\nChecked out existing branch: %s\n", name)
	default:
		return tui.ErrCancelled
	}

	return nil
}

// printBranchSummary echoes what happened and where the config lives.
func printBranchSummary(ticket models.Ticket, name, configPath string) {
	rule := strings.Repeat("=", 50)
	fmt.Println("\n" + rule)
	fmt.Println("Summary:")
	fmt.Printf("   Ticket:  %s\n", ticket.Key)
	fmt.Printf("   Type:    %s\n", ticket.Type)
	fmt.Printf("   Status:  %s\n", ticket.Status)
	fmt.Printf("   Summary: %s\n", ticket.Summary)
	fmt.Printf("   Branch:  %s\n", name)
	fmt.Println(rule)
	fmt.Println("\nYou can edit the configuration at any time:")
	fmt.Printf("   %s\n", configPath)
}

// printUpdateNotice runs the throttled release check. Silent on every
// failure path.
func printUpdateNotice(ctx context.Context, configPath string) {
	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	cache := version.NewCache(filepath.Join(filepath.Dir(configPath), ".version_cache"))
	client := version.NewClient(config.GithubToken())
	if latest, ok := version.Notice(ctx, client, cache); ok {
		fmt.Printf("\nNew version available: v%s (current: v%s)\n", latest, version.Current)
		fmt.Printf("See what's new: %s\n", version.ReleasesURL)
	}
}

// abortOnCancel turns a user cancellation into a clean exit; every other
// error passes through.
func abortOnCancel(err error) error {
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Println("\nOperation cancelled.")
		return nil
	}
	return err
}

// describeConfigError adds the setup hint to configuration failures.
func describeConfigError(err error, path string) error {
	switch {
	case errors.Is(err, config.ErrNotFound):
		return fmt.Errorf("no configuration found at %s: run 'conductor setup' first", path)
	case errors.Is(err, config.ErrIncomplete):
		return fmt.Errorf("%w: run 'conductor setup' to finish configuring", err)
	default:
		return err
	}
}
