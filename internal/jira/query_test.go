package jira

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conductor-cli/conductor/internal/config"
)

func TestBuildJQL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "minimal config has exactly assignee and sprint",
			cfg:  config.Config{Username: "dev@example.com"},
			want: "assignee = 'dev@example.com' AND sprint in openSprints()",
		},
		{
			name: "with projects",
			cfg: config.Config{
				Username:    "dev@example.com",
				ProjectKeys: []string{"CDEM", "OPS"},
			},
			want: `assignee = 'dev@example.com' AND sprint in openSprints() AND project in ("CDEM", "OPS")`,
		},
		{
			name: "with statuses",
			cfg: config.Config{
				Username:       "dev@example.com",
				TicketStatuses: []string{"In Progress", "To Do"},
			},
			want: `assignee = 'dev@example.com' AND sprint in openSprints() AND status in ("In Progress", "To Do")`,
		},
		{
			name: "with additional filter",
			cfg: config.Config{
				Username:      "dev@example.com",
				AdditionalJQL: "labels = backend",
			},
			want: "assignee = 'dev@example.com' AND sprint in openSprints() AND labels = backend",
		},
		{
			name: "everything in fixed order",
			cfg: config.Config{
				Username:       "dev@example.com",
				ProjectKeys:    []string{"CDEM"},
				TicketStatuses: []string{"In Progress"},
				AdditionalJQL:  "labels = backend",
			},
			want: `assignee = 'dev@example.com' AND sprint in openSprints() AND project in ("CDEM") AND status in ("In Progress") AND labels = backend`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildJQL(&tt.cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildJQLMinimalConditionCount(t *testing.T) {
	cfg := config.Config{Username: "dev@example.com"}

	got := BuildJQL(&cfg)

	assert.Equal(t, 2, len(strings.Split(got, " AND ")))
}
