package version

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{name: "newer patch", current: "1.0.6", latest: "1.0.7", want: true},
		{name: "newer minor", current: "1.0.6", latest: "1.1.0", want: true},
		{name: "newer major", current: "1.0.6", latest: "2.0.0", want: true},
		{name: "same version", current: "1.0.6", latest: "1.0.6", want: false},
		{name: "older version", current: "1.0.6", latest: "1.0.5", want: false},
		{name: "shorter prefix is older", current: "1.2", latest: "1.2.0", want: true},
		{name: "longer current wins", current: "1.2.0", latest: "1.2", want: false},
		{name: "unparseable latest counts as zero", current: "1.0.6", latest: "nightly", want: false},
		{name: "unparseable current counts as zero", current: "nightly", latest: "0.0.1", want: true},
		{name: "empty latest", current: "1.0.6", latest: "", want: false},
		{name: "double digit components", current: "1.9.0", latest: "1.10.0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNewer(tt.current, tt.latest))
		})
	}
}

func TestCacheThrottles(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".version_cache")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := &Cache{path: path, now: func() time.Time { return now }}

	assert.True(t, cache.ShouldCheck(), "no state file yet")

	cache.MarkChecked()
	assert.False(t, cache.ShouldCheck(), "just checked")

	now = now.Add(23 * time.Hour)
	assert.False(t, cache.ShouldCheck(), "within the interval")

	now = now.Add(2 * time.Hour)
	assert.True(t, cache.ShouldCheck(), "interval elapsed")
}

func TestCacheIgnoresCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".version_cache")
	cache := NewCache(path)

	assert.True(t, cache.ShouldCheck())

	// A half-written state file must never wedge the check.
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	assert.True(t, cache.ShouldCheck())
}

func TestMarkCheckedRecordsCurrentVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".version_cache")
	cache := NewCache(path)

	cache.MarkChecked()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), Current)
	assert.Contains(t, string(data), "last_check")
}
