package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})

	Version = "1.2.0"
	Commit = "abc123def456"
	Date = "2026-01-15"

	info := GetInfo()
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "abc123def456", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)

	s := info.String()
	assert.Contains(t, s, "staffdeck 1.2.0")
	// Commit hash is shortened for display
	assert.Contains(t, s, "abc123de")
	assert.NotContains(t, s, "abc123def456")
}
