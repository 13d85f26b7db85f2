// Package version implements the update check against the project's
// GitHub releases.
package version

import (
	"strconv"
	"strings"
)

// Current is the version embedded in the binary.
const Current = "1.0.6"

// Release lookup coordinates.
const (
	repoOwner = "conductor-cli"
	repoName  = "conductor"

	// ReleasesURL is shown to users when an update is available.
	ReleasesURL = "https://github.com/conductor-cli/conductor/releases/latest"
)

// IsNewer reports whether latest is strictly newer than current. Versions
// compare as dot-separated integer tuples; anything unparseable counts as
// version zero. A shorter tuple that prefixes a longer one is older
// ("1.2" is older than "1.2.0").
func IsNewer(current, latest string) bool {
	return compareVersions(parseVersion(latest), parseVersion(current)) > 0
}

// parseVersion splits v into its numeric components. Any component that is
// not a plain integer voids the whole version.
func parseVersion(v string) []int {
	parts := strings.Split(strings.TrimSpace(v), ".")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return []int{0, 0, 0}
		}
		nums = append(nums, n)
	}
	return nums
}

func compareVersions(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	default:
		return 0
	}
}
