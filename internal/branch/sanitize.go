// Package branch derives git branch names from ticket fields and user
// configuration.
package branch

import (
	"regexp"
	"strings"
)

// DefaultMaxLength caps sanitized summaries and, unless overridden on the
// Builder, fully assembled branch names.
const DefaultMaxLength = 60

// keyFragmentMax is the longest head segment still treated as a ticket key
// when a name needs truncating.
const keyFragmentMax = 10

var (
	// invalidChars matches every character that may not appear in a
	// branch name token. Slashes survive so type prefixes keep their
	// own path segment.
	invalidChars = regexp.MustCompile(`[^a-z0-9-/]`)

	// hyphenRuns matches runs of consecutive hyphens.
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Sanitize normalizes text into a safe branch-name token of at most
// maxLength characters. The input is lower-cased, spaces and underscores
// become hyphens, every other character outside [a-z0-9-/] is dropped,
// hyphen runs collapse to one, and leading/trailing hyphens are trimmed.
// A result still over maxLength is truncated without cutting into a
// leading ticket-key fragment. The result may be empty; Sanitize never
// fails.
func Sanitize(text string, maxLength int) string {
	name := strings.ToLower(text)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	name = invalidChars.ReplaceAllString(name, "")
	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	return truncate(name, maxLength)
}

// truncate enforces maxLength on an already-clean name. A short segment
// before the first hyphen is treated as a ticket key and kept whole, with
// only the remainder cut to fit. A longer head means there is no key to
// protect and the whole string is cut. Case is left alone so callers can
// truncate mixed-case names too.
func truncate(name string, maxLength int) string {
	if len(name) <= maxLength {
		return name
	}

	head, rest, found := strings.Cut(name, "-")
	if found && len(head) <= keyFragmentMax {
		keep := maxLength - len(head) - 1
		if keep < 0 {
			keep = 0
		}
		if keep > len(rest) {
			keep = len(rest)
		}
		return strings.TrimRight(head+"-"+rest[:keep], "-")
	}

	return strings.TrimRight(name[:maxLength], "-")
}
