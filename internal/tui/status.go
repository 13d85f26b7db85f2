package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Category classifies a ticket status for display.
type Category int

const (
	CategoryWorking Category = iota
	CategoryTodo
	CategoryReview
	CategoryQA
	CategoryUAT
	CategoryDone
	CategoryBlocked
	CategoryHold
	CategoryWaiting
	CategoryUnknown
)

// statusKeywords pairs status-name fragments with their category. Order
// matters: the first fragment contained in the status wins, so workflows
// whose names mention several stages classify by the earlier entry
// ("QA Review" is a review, not QA).
var statusKeywords = []struct {
	fragment string
	category Category
}{
	{"in progress", CategoryWorking},
	{"working", CategoryWorking},
	{"in development", CategoryWorking},
	{"dev", CategoryWorking},
	{"ready for work", CategoryTodo},
	{"ready for dev", CategoryTodo},
	{"to do", CategoryTodo},
	{"todo", CategoryTodo},
	{"backlog", CategoryTodo},
	{"peer review", CategoryReview},
	{"code review", CategoryReview},
	{"in review", CategoryReview},
	{"review", CategoryReview},
	{"ready for qa", CategoryQA},
	{"qa", CategoryQA},
	{"testing", CategoryQA},
	{"ready for test", CategoryQA},
	{"in qa", CategoryQA},
	{"uat", CategoryUAT},
	{"user acceptance", CategoryUAT},
	{"ready for uat", CategoryUAT},
	{"in uat", CategoryUAT},
	{"done", CategoryDone},
	{"completed", CategoryDone},
	{"closed", CategoryDone},
	{"resolved", CategoryDone},
	{"blocked", CategoryBlocked},
	{"on hold", CategoryHold},
	{"waiting", CategoryWaiting},
}

var categoryStyles = map[Category]lipgloss.Style{
	CategoryWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
	CategoryTodo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
	CategoryReview:  lipgloss.NewStyle().Foreground(lipgloss.Color("135")), // purple
	CategoryQA:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")), // yellow
	CategoryUAT:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
	CategoryDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("40")),  // green
	CategoryBlocked: lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
	CategoryHold:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // grey
	CategoryWaiting: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// CategoryFor returns the display category for a status name. Matching is
// case-insensitive on substrings, so custom workflow names like
// "Ready for QA (staging)" still classify.
func CategoryFor(status string) Category {
	lower := strings.ToLower(status)
	for _, entry := range statusKeywords {
		if strings.Contains(lower, entry.fragment) {
			return entry.category
		}
	}
	return CategoryUnknown
}

// StatusBadge renders a status name as a colored [status] tag for list
// rows. Unrecognized statuses render unstyled.
func StatusBadge(status string) string {
	badge := "[" + status + "]"
	style, ok := categoryStyles[CategoryFor(status)]
	if !ok {
		return badge
	}
	return style.Render(badge)
}
