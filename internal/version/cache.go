package version

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// checkInterval is the minimum time between update checks.
const checkInterval = 24 * time.Hour

// cacheRecord is the persisted timestamp of the last update check.
type cacheRecord struct {
	LastCheck      time.Time `json:"last_check"`
	CurrentVersion string    `json:"current_version"`
}

// Cache throttles update checks through a small JSON state file,
// conventionally stored next to the configuration file.
type Cache struct {
	path string
	now  func() time.Time
}

// NewCache returns a cache backed by the state file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path, now: time.Now}
}

// ShouldCheck reports whether enough time has passed since the last check.
// A missing or unreadable state file always allows a check.
func (c *Cache) ShouldCheck() bool {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return true
	}

	var record cacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return true
	}

	return c.now().Sub(record.LastCheck) > checkInterval
}

// MarkChecked records that a check just happened. Best-effort: a failed
// write only means the next run checks again.
func (c *Cache) MarkChecked() {
	record := cacheRecord{LastCheck: c.now(), CurrentVersion: Current}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(c.path, data, 0o644)
}
