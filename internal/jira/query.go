package jira

import (
	"fmt"
	"strings"

	"github.com/conductor-cli/conductor/internal/config"
)

// BuildJQL assembles the ticket search filter for a configuration. The
// assignee and open-sprint conditions are always present; project, status,
// and any additional filter are appended only when configured. The order
// is fixed: assignee, sprint, project, status, additional.
func BuildJQL(cfg *config.Config) string {
	conditions := []string{
		fmt.Sprintf("assignee = '%s'", cfg.Username),
		"sprint in openSprints()",
	}

	if len(cfg.ProjectKeys) > 0 {
		conditions = append(conditions, fmt.Sprintf("project in (%s)", quoteList(cfg.ProjectKeys)))
	}
	if len(cfg.TicketStatuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status in (%s)", quoteList(cfg.TicketStatuses)))
	}
	if cfg.AdditionalJQL != "" {
		conditions = append(conditions, cfg.AdditionalJQL)
	}

	return strings.Join(conditions, " AND ")
}

// quoteList renders values as a double-quoted, comma-separated JQL list.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = fmt.Sprintf("%q", value)
	}
	return strings.Join(quoted, ", ")
}
