// Package id generates identifiers for validation runs.
//
// Run IDs are UUID v7, so they sort by creation time and carry their
// timestamp. They tag JSON reports and log lines of a single invocation.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunID returns a new time-ordered run identifier.
func RunID() string {
	u, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return u.String()
}

// Short returns the first 8 hex characters of a run ID, for file names and
// terminal output.
func Short(runID string) string {
	s := strings.ReplaceAll(runID, "-", "")
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// RunTime extracts the creation time from a run ID.
func RunTime(runID string) (time.Time, error) {
	u, err := uuid.Parse(runID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run ID %q: %w", runID, err)
	}
	if u.Version() != 7 {
		return time.Time{}, fmt.Errorf("run ID %q is not time-ordered (version %d)", runID, u.Version())
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}
