package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conductor-cli/conductor/internal/config"
	"github.com/conductor-cli/conductor/internal/jira"
	"github.com/conductor-cli/conductor/internal/logging"
	"github.com/conductor-cli/conductor/internal/tui"
)

// tokenHelpURL is where Atlassian Cloud users create API tokens.
const tokenHelpURL = "https://id.atlassian.com/manage-profile/security/api-tokens"

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure Jira credentials and settings",
	Long: `Walks through the full configuration: Jira server and credentials, the
projects and statuses to filter tickets by, and the branch naming style.
Every answer is saved as soon as it is given, so an interrupted run keeps
the progress made so far. Safe to re-run at any time.`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Conductor setup")
	fmt.Println("This configures your Jira credentials and fetches project settings.")
	fmt.Println()

	existing, err := loadExisting(path)
	if err != nil {
		return err
	}
	existingToken, _ := config.LoadToken(path) // empty when not configured yet

	server, username, token, err := promptCredentials(existing, existingToken)
	if err != nil {
		return abortOnCancel(err)
	}

	fmt.Println("\nSaving credentials...")
	if err := config.MergeSave(path, map[string]any{
		"jira_server":   server,
		"jira_username": username,
	}); err != nil {
		return err
	}
	if err := config.SaveToken(path, token); err != nil {
		return err
	}
	logging.Debug("credentials saved",
		"server", server,
		"username", username,
		"token", logging.MaskSensitive(token))

	fmt.Println("\nTesting connection...")
	client, err := jira.NewClient(server, username, token)
	if err != nil {
		return err
	}
	if err := client.Verify(ctx); err != nil {
		fmt.Println("Could not connect to Jira.")
		fmt.Println("\nPlease verify:")
		fmt.Println("  - The username is your full Jira email address")
		fmt.Println("  - The API token is valid and not expired")
		fmt.Println("  - The company name is correct")
		return err
	}
	fmt.Println("Successfully connected to Jira")

	projects, err := selectProjects(ctx, client, existing.ProjectKeys)
	if err != nil {
		return abortOnCancel(err)
	}
	if err := config.MergeSave(path, map[string]any{"project_keys": projects}); err != nil {
		return err
	}

	statuses, err := selectStatuses(ctx, client, existing.TicketStatuses)
	if err != nil {
		return abortOnCancel(err)
	}
	if err := config.MergeSave(path, map[string]any{"ticket_statuses": statuses}); err != nil {
		return err
	}

	usePrefixes, err := confirmBranchPrefixes(existing)
	if err != nil {
		return abortOnCancel(err)
	}
	if err := config.MergeSave(path, map[string]any{"use_branch_prefixes": usePrefixes}); err != nil {
		return err
	}

	if defaults := existing.MissingDefaults(); len(defaults) > 0 {
		if err := config.MergeSave(path, defaults); err != nil {
			return err
		}
	}

	printSetupSummary(path, server, username, projects, statuses, usePrefixes)
	return nil
}

// loadExisting reads the stored record for pre-filling prompts. An
// unparseable file is moved aside so the wizard can rebuild it without
// destroying the user's bytes.
func loadExisting(path string) (*config.Partial, error) {
	existing, err := config.LoadPartial(path)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, config.ErrInvalid) {
		return nil, err
	}

	backup := path + ".invalid"
	if renameErr := os.Rename(path, backup); renameErr != nil {
		return nil, fmt.Errorf("existing config is not valid and could not be moved aside: %w", renameErr)
	}
	fmt.Printf("Warning: could not read the existing config, starting fresh (old file saved as %s)\n", backup)
	return &config.Partial{}, nil
}

// promptCredentials collects server, username, and API token, offering to
// reuse stored values.
func promptCredentials(existing *config.Partial, existingToken string) (server, username, token string, err error) {
	company := ""
	if existing.Server != nil {
		company = strings.TrimSuffix(strings.TrimPrefix(*existing.Server, "https://"), ".atlassian.net")
	}

	if company != "" {
		reuse, err := tui.Confirm(fmt.Sprintf("Use the existing company '%s'?", company), true)
		if err != nil {
			return "", "", "", err
		}
		if !reuse {
			company = ""
		}
	}
	if company == "" {
		company, err = tui.Input("Enter your company name (the <company> in <company>.atlassian.net):", "")
		if err != nil {
			return "", "", "", err
		}
		if company == "" {
			return "", "", "", tui.ErrCancelled
		}
	}
	server = fmt.Sprintf("https://%s.atlassian.net", company)

	if existing.Username != nil && *existing.Username != "" {
		reuse, err := tui.Confirm(fmt.Sprintf("Use the existing username '%s'?", *existing.Username), true)
		if err != nil {
			return "", "", "", err
		}
		if reuse {
			username = *existing.Username
		}
	}
	for username == "" {
		username, err = tui.Input("Enter your Jira email (the full address, like name@company.com):", "")
		if err != nil {
			return "", "", "", err
		}
		if username == "" {
			return "", "", "", tui.ErrCancelled
		}
		if !strings.Contains(username, "@") {
			fmt.Println("The username must be a full email address.")
			username = ""
		}
	}

	if existingToken != "" {
		reuse, err := tui.Confirm(
			fmt.Sprintf("Use the existing API token (%s)?", logging.MaskSensitive(existingToken)), true)
		if err != nil {
			return "", "", "", err
		}
		if reuse {
			token = existingToken
		}
	}
	if token == "" {
		fmt.Println("\nCreate an API token at: " + tokenHelpURL)
		token, err = tui.Password("Enter your Jira API token")
		if err != nil {
			return "", "", "", err
		}
	}

	return server, username, token, nil
}

// selectProjects fetches the project list and runs the multi-select with
// the stored keys pre-checked. A fetch failure keeps the stored selection
// so a flaky permission never wipes it.
func selectProjects(ctx context.Context, client *jira.Client, current []string) ([]string, error) {
	fmt.Println("\nFetching available projects...")
	projects, err := client.Projects(ctx)
	if err != nil {
		logging.Warn("could not fetch projects, keeping current selection", "error", err)
		return current, nil
	}
	if len(projects) == 0 {
		fmt.Println("No projects found or insufficient permissions.")
		return current, nil
	}
	fmt.Printf("Found %d project(s)\n", len(projects))

	options := make([]string, len(projects))
	checked := make([]bool, len(projects))
	for i, project := range projects {
		options[i] = fmt.Sprintf("%s - %s", project.Key, project.Name)
		checked[i] = slices.Contains(current, project.Key)
	}

	picked, err := tui.MultiSelect("Select projects to filter tickets by (none means all):", options, checked)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(picked))
	for _, idx := range picked {
		keys = append(keys, projects[idx].Key)
	}
	return keys, nil
}

// selectStatuses mirrors selectProjects for workflow statuses.
func selectStatuses(ctx context.Context, client *jira.Client, current []string) ([]string, error) {
	fmt.Println("\nFetching available statuses...")
	statuses, err := client.Statuses(ctx)
	if err != nil {
		logging.Warn("could not fetch statuses, keeping current selection", "error", err)
		return current, nil
	}
	if len(statuses) == 0 {
		fmt.Println("No statuses found or insufficient permissions.")
		return current, nil
	}
	fmt.Printf("Found %d status(es)\n", len(statuses))

	checked := make([]bool, len(statuses))
	for i, status := range statuses {
		checked[i] = slices.Contains(current, status)
	}

	picked, err := tui.MultiSelect("Select statuses to filter tickets by (none means all):", statuses, checked)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(picked))
	for _, idx := range picked {
		names = append(names, statuses[idx])
	}
	return names, nil
}

// confirmBranchPrefixes explains the two naming styles with examples and
// asks which to use, defaulting to the stored preference.
func confirmBranchPrefixes(existing *config.Partial) (bool, error) {
	rule := strings.Repeat("=", 50)
	fmt.Println("\n" + rule)
	fmt.Println("Branch prefix configuration")
	fmt.Println(rule)
	fmt.Println("\nWith prefixes enabled:")
	fmt.Println("  Bug:         bugfix/CDEM-123-fix-login-error")
	fmt.Println("  Story:       feature/CDEM-456-user-dashboard")
	fmt.Println("  Task:        feature/CDEM-789-update-docs")
	fmt.Println("  Epic:        feature/CDEM-101-roadmap-item")
	fmt.Println("  Improvement: improvement/CDEM-202-refactor-api")
	fmt.Println("  Spike:       spike/CDEM-303-research-solution")
	fmt.Println("\nWithout prefixes:")
	fmt.Println("  Bug:         CDEM-123-fix-login-error")
	fmt.Println("  Story:       CDEM-456-user-dashboard")
	fmt.Println()

	def := true
	if existing.UseBranchPrefixes != nil {
		def = *existing.UseBranchPrefixes
	}
	return tui.Confirm("Use branch prefixes?", def)
}

// printSetupSummary reports the final configuration and where it lives.
func printSetupSummary(path, server, username string, projects, statuses []string, usePrefixes bool) {
	projectList := "all projects"
	if len(projects) > 0 {
		projectList = strings.Join(projects, ", ")
	}
	statusList := "all statuses"
	if len(statuses) > 0 {
		statusList = strings.Join(statuses, ", ")
	}
	prefixState := "disabled"
	if usePrefixes {
		prefixState = "enabled"
	}

	rule := strings.Repeat("=", 50)
	fmt.Println("\n" + rule)
	fmt.Println("Setup complete!")
	fmt.Println(rule)
	fmt.Printf("   Server:          %s\n", server)
	fmt.Printf("   Username:        %s\n", username)
	fmt.Printf("   Projects:        %s\n", projectList)
	fmt.Printf("   Statuses:        %s\n", statusList)
	fmt.Printf("   Branch prefixes: %s\n", prefixState)
	fmt.Printf("   Config file:     %s\n", path)
	fmt.Printf("   Token file:      %s\n", config.CredentialsPath(path))
	fmt.Println(rule)
	fmt.Println("\nNext: run 'conductor branch' from inside any git repository.")
}
