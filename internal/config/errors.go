package config

import "errors"

// Sentinel errors returned by the load functions. Callers branch on them
// with errors.Is.
var (
	// ErrNotFound means no configuration file exists at the given path.
	ErrNotFound = errors.New("configuration not found")

	// ErrInvalid means the file exists but its content is not a
	// well-formed record.
	ErrInvalid = errors.New("configuration is not valid")

	// ErrIncomplete means a required value is absent or empty.
	ErrIncomplete = errors.New("configuration is incomplete")
)
