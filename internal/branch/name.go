package branch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conductor-cli/conductor/internal/config"
	"github.com/conductor-cli/conductor/pkg/models"
)

// DefaultType is used when an issue type has no entry in the prefix table.
const DefaultType = "feature"

// placeholder matches {name} tokens in a branch pattern.
var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Builder assembles branch names for tickets. MaxLength bounds the final
// name; zero means DefaultMaxLength.
type Builder struct {
	MaxLength int
}

// Build derives the branch name for a ticket. It never fails: a broken
// pattern falls back to the plain "type/key-summary" form and the problem
// is reported through the returned warnings.
func (b Builder) Build(ticket models.Ticket, cfg *config.Config) (string, []string) {
	var warnings []string

	branchType := cfg.BranchPrefixes[ticket.Type]
	if branchType == "" {
		branchType = DefaultType
	}

	ticketKey := formatKey(ticket.Key, cfg.TicketCodeCase)
	summary := Sanitize(ticket.Summary, DefaultMaxLength)

	var name string
	if cfg.UseBranchPrefixes {
		expanded, err := expandPattern(cfg.BranchPattern, branchType, ticketKey, summary)
		if err != nil {
			warnings = append(warnings, err.Error())
			name = branchType + "/" + ticketKey + "-" + summary
		} else {
			name = expanded
		}
	} else {
		name = ticketKey + "-" + summary
	}

	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	maxLength := b.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	return truncate(name, maxLength), warnings
}

// formatKey normalizes a ticket key. The project segment before the first
// hyphen is always upper-cased; the number segment follows caseRule
// ("lower", "upper", anything else keeps the stored case). Keys without a
// hyphen are used as-is.
func formatKey(key, caseRule string) string {
	project, number, found := strings.Cut(key, "-")
	if !found {
		return key
	}

	project = strings.ToUpper(project)
	switch caseRule {
	case config.CaseLower:
		number = strings.ToLower(number)
	case config.CaseUpper:
		number = strings.ToUpper(number)
	}

	return project + "-" + number
}

// expandPattern substitutes {type}, {ticket_key}, and {summary} into the
// configured pattern. An unknown placeholder aborts the expansion so the
// caller can fall back to the plain form.
func expandPattern(pattern, branchType, ticketKey, summary string) (string, error) {
	values := map[string]string{
		"type":       branchType,
		"ticket_key": ticketKey,
		"summary":    summary,
	}

	var unknown string
	expanded := placeholder.ReplaceAllStringFunc(pattern, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		value, ok := values[name]
		if !ok {
			if unknown == "" {
				unknown = name
			}
			return match
		}
		return value
	})
	if unknown != "" {
		return "", fmt.Errorf("invalid placeholder '%s' in branch pattern", unknown)
	}

	return expanded, nil
}
