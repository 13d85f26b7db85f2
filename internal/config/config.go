// Package config loads, validates, and incrementally persists the tool's
// settings. The file location is always passed in explicitly; only
// DefaultPath and the token helpers consult the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ticket-number case rules for TicketCodeCase.
const (
	CaseLower = "lower"
	CaseUpper = "upper"
	CaseKeep  = "keep"
)

// Defaults for fields that may be absent from the stored record. The
// required fields (server, username) have no defaults.
const (
	DefaultMaxResults    = 100
	DefaultBranchPattern = "{type}/{ticket_key}-{summary}"
)

// DefaultBranchPrefixes returns the stock issue-type to prefix table.
func DefaultBranchPrefixes() map[string]string {
	return map[string]string{
		"Bug":         "bugfix",
		"Story":       "feature",
		"Task":        "feature",
		"Epic":        "feature",
		"Improvement": "improvement",
		"Spike":       "spike",
	}
}

// Config holds every persisted setting, validated and with defaults
// applied. Field tags mirror the keys stored in the configuration file.
type Config struct {
	Server            string            `yaml:"jira_server"`
	Username          string            `yaml:"jira_username"`
	ProjectKeys       []string          `yaml:"project_keys"`
	TicketStatuses    []string          `yaml:"ticket_statuses"`
	UseBranchPrefixes bool              `yaml:"use_branch_prefixes"`
	MaxResults        int               `yaml:"max_results"`
	BranchPrefixes    map[string]string `yaml:"branch_prefixes"`
	BranchPattern     string            `yaml:"branch_pattern"`
	TicketCodeCase    string            `yaml:"ticket_code_case"`
	AdditionalJQL     string            `yaml:"additional_jql"`
}

// Partial is the stored record with pointer fields so absent keys can be
// told apart from stored zero values. The setup wizard reads it to
// pre-fill prompts; Load builds the validated Config from it.
type Partial struct {
	Server            *string           `yaml:"jira_server"`
	Username          *string           `yaml:"jira_username"`
	ProjectKeys       []string          `yaml:"project_keys"`
	TicketStatuses    []string          `yaml:"ticket_statuses"`
	UseBranchPrefixes *bool             `yaml:"use_branch_prefixes"`
	MaxResults        *int              `yaml:"max_results"`
	BranchPrefixes    map[string]string `yaml:"branch_prefixes"`
	BranchPattern     *string           `yaml:"branch_pattern"`
	TicketCodeCase    *string           `yaml:"ticket_code_case"`
	AdditionalJQL     *string           `yaml:"additional_jql"`
}

// MissingDefaults returns the stock values for optional fields the stored
// record does not carry. The setup wizard persists these once at the end,
// so a hand-edited file keeps any values already present.
func (p *Partial) MissingDefaults() map[string]any {
	defaults := map[string]any{}
	if p.BranchPrefixes == nil {
		defaults["branch_prefixes"] = DefaultBranchPrefixes()
	}
	if p.BranchPattern == nil {
		defaults["branch_pattern"] = DefaultBranchPattern
	}
	if p.TicketCodeCase == nil {
		defaults["ticket_code_case"] = CaseLower
	}
	if p.MaxResults == nil {
		defaults["max_results"] = DefaultMaxResults
	}
	if p.AdditionalJQL == nil {
		defaults["additional_jql"] = ""
	}
	return defaults
}

// Load reads and validates the configuration at path. It fails with
// ErrNotFound when no file exists, ErrInvalid when the content cannot be
// parsed, and ErrIncomplete when jira_server or jira_username is absent or
// empty. Optional fields receive their defaults only when the stored
// record has no value for them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw Partial
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var missing []string
	if raw.Server == nil || *raw.Server == "" {
		missing = append(missing, "jira_server")
	}
	if raw.Username == nil || *raw.Username == "" {
		missing = append(missing, "jira_username")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	if raw.MaxResults != nil && *raw.MaxResults <= 0 {
		return nil, fmt.Errorf("%w: max_results must be positive", ErrInvalid)
	}

	cfg := &Config{
		Server:            *raw.Server,
		Username:          *raw.Username,
		ProjectKeys:       raw.ProjectKeys,
		TicketStatuses:    raw.TicketStatuses,
		UseBranchPrefixes: true,
		MaxResults:        DefaultMaxResults,
		BranchPrefixes:    raw.BranchPrefixes,
		BranchPattern:     DefaultBranchPattern,
		TicketCodeCase:    CaseLower,
	}
	if raw.UseBranchPrefixes != nil {
		cfg.UseBranchPrefixes = *raw.UseBranchPrefixes
	}
	if raw.MaxResults != nil {
		cfg.MaxResults = *raw.MaxResults
	}
	if raw.BranchPrefixes == nil {
		cfg.BranchPrefixes = DefaultBranchPrefixes()
	}
	if raw.BranchPattern != nil {
		cfg.BranchPattern = *raw.BranchPattern
	}
	if raw.TicketCodeCase != nil {
		cfg.TicketCodeCase = *raw.TicketCodeCase
	}
	if raw.AdditionalJQL != nil {
		cfg.AdditionalJQL = *raw.AdditionalJQL
	}

	return cfg, nil
}

// LoadPartial reads the record at path without validating required fields.
// A missing file yields an empty Partial.
func LoadPartial(path string) (*Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Partial{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var p Partial
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &p, nil
}

// DefaultPath returns the configuration file location: the
// CONDUCTOR_CONFIG environment variable when set, otherwise
// ~/.config/conductor/config.yaml.
func DefaultPath() (string, error) {
	if path := env.GetString("conductor_config"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "conductor", "config.yaml"), nil
}
