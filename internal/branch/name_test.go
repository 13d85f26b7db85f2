package branch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conductor-cli/conductor/internal/config"
	"github.com/conductor-cli/conductor/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:            "https://example.atlassian.net",
		Username:          "dev@example.com",
		UseBranchPrefixes: true,
		MaxResults:        config.DefaultMaxResults,
		BranchPrefixes:    config.DefaultBranchPrefixes(),
		BranchPattern:     config.DefaultBranchPattern,
		TicketCodeCase:    config.CaseLower,
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		ticket models.Ticket
		modify func(cfg *config.Config)
		want   string
	}{
		{
			name:   "story with default pattern",
			ticket: models.Ticket{Key: "CDEM-42", Type: "Story", Summary: "Fix Login Error!!"},
			want:   "feature/CDEM-42-fix-login-error",
		},
		{
			name:   "bug prefix",
			ticket: models.Ticket{Key: "CDEM-101", Type: "Bug", Summary: "Broken redirect"},
			want:   "bugfix/CDEM-101-broken-redirect",
		},
		{
			name:   "unknown issue type falls back to feature",
			ticket: models.Ticket{Key: "CDEM-7", Type: "Sub-task", Summary: "Tidy up"},
			want:   "feature/CDEM-7-tidy-up",
		},
		{
			name:   "prefixes disabled",
			ticket: models.Ticket{Key: "CDEM-42", Type: "Story", Summary: "Fix Login Error!!"},
			modify: func(cfg *config.Config) { cfg.UseBranchPrefixes = false },
			want:   "CDEM-42-fix-login-error",
		},
		{
			name:   "empty summary ends at the ticket key",
			ticket: models.Ticket{Key: "CDEM-9", Type: "Task", Summary: "!!!"},
			want:   "feature/CDEM-9",
		},
		{
			name:   "project segment always upper",
			ticket: models.Ticket{Key: "cdem-42", Type: "Story", Summary: "Login"},
			want:   "feature/CDEM-42-login",
		},
		{
			name:   "upper case rule",
			ticket: models.Ticket{Key: "cdem-42a", Type: "Story", Summary: "Login"},
			modify: func(cfg *config.Config) { cfg.TicketCodeCase = config.CaseUpper },
			want:   "feature/CDEM-42A-login",
		},
		{
			name:   "keep case rule leaves the number alone",
			ticket: models.Ticket{Key: "cdem-42a", Type: "Story", Summary: "Login"},
			modify: func(cfg *config.Config) { cfg.TicketCodeCase = config.CaseKeep },
			want:   "feature/CDEM-42a-login",
		},
		{
			name:   "key without hyphen is used as-is",
			ticket: models.Ticket{Key: "cdem", Type: "Story", Summary: "Login"},
			want:   "feature/cdem-login",
		},
		{
			name:   "custom pattern",
			ticket: models.Ticket{Key: "CDEM-42", Type: "Bug", Summary: "Login"},
			modify: func(cfg *config.Config) { cfg.BranchPattern = "{type}/{ticket_key}/{summary}" },
			want:   "bugfix/CDEM-42/login",
		},
		{
			name:   "pattern without placeholders is used verbatim",
			ticket: models.Ticket{Key: "CDEM-42", Type: "Bug", Summary: "Login"},
			modify: func(cfg *config.Config) { cfg.BranchPattern = "static-name" },
			want:   "static-name",
		},
		{
			name:   "doubled separators collapse",
			ticket: models.Ticket{Key: "CDEM-42", Type: "Bug", Summary: "Login"},
			modify: func(cfg *config.Config) { cfg.BranchPattern = "{type}/{ticket_key}--{summary}" },
			want:   "bugfix/CDEM-42-login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.modify != nil {
				tt.modify(cfg)
			}

			got, warnings := Builder{}.Build(tt.ticket, cfg)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, warnings)
		})
	}
}

func TestBuildInvalidPlaceholder(t *testing.T) {
	cfg := testConfig()
	cfg.BranchPattern = "{type}/{phase}/{summary}"

	got, warnings := Builder{}.Build(models.Ticket{Key: "CDEM-42", Type: "Bug", Summary: "Login"}, cfg)

	assert.Equal(t, "bugfix/CDEM-42-login", got)
	if assert.Len(t, warnings, 1) {
		assert.Contains(t, warnings[0], "phase")
	}
}

func TestBuildMaxLengthKeepsKey(t *testing.T) {
	cfg := testConfig()
	ticket := models.Ticket{
		Key:     "PROJ-12345",
		Type:    "Bug",
		Summary: "a very long summary that exceeds the limit by a wide margin",
	}

	got, warnings := Builder{MaxLength: 20}.Build(ticket, cfg)

	assert.Empty(t, warnings)
	assert.LessOrEqual(t, len(got), 20)
	assert.True(t, strings.HasPrefix(got, "bugfix/PROJ-12345"), "got %q", got)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestBuildWithoutPrefixesNeverPrefixed(t *testing.T) {
	cfg := testConfig()
	cfg.UseBranchPrefixes = false

	tickets := []models.Ticket{
		{Key: "CDEM-1", Type: "Bug", Summary: "One"},
		{Key: "CDEM-2", Type: "Story", Summary: "Two"},
		{Key: "CDEM-3", Type: "Improvement", Summary: "Three"},
		{Key: "CDEM-4", Type: "Spike", Summary: "Four"},
	}

	for _, ticket := range tickets {
		got, _ := Builder{}.Build(ticket, cfg)
		for _, prefix := range cfg.BranchPrefixes {
			assert.False(t, strings.HasPrefix(got, prefix+"/"), "branch %q starts with %q", got, prefix)
		}
	}
}

func TestBuildNameIsClean(t *testing.T) {
	cfg := testConfig()
	tickets := []models.Ticket{
		{Key: "CDEM-42", Type: "Story", Summary: "  spaced   out   summary  "},
		{Key: "CDEM-43", Type: "Bug", Summary: "trailing punctuation!!!"},
		{Key: "CDEM-44", Type: "Epic", Summary: ""},
	}

	for _, ticket := range tickets {
		got, _ := Builder{}.Build(ticket, cfg)
		assert.NotContains(t, got, "--")
		assert.False(t, strings.HasPrefix(got, "-"))
		assert.False(t, strings.HasSuffix(got, "-"))
	}
}
