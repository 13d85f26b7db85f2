// Package models defines data structures shared across the application.
package models

// Ticket represents a single issue-tracker ticket assigned to the current
// user. Instances are immutable snapshots taken from the tracker API during
// one command invocation; nothing in the workflow mutates them.
type Ticket struct {
	// Key is the full ticket identifier (e.g., "CDEM-1234").
	Key string

	// Type is the issue type name (e.g., "Story", "Bug", "Task").
	Type string

	// Summary is the ticket's one-line summary field.
	Summary string

	// Status is the current workflow status name (e.g., "In Progress").
	Status string
}
