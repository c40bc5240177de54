package handler

import (
	"fmt"
	"strings"
	"time"
)

// naiveLayout is how timestamps are rendered: wall clock, no zone.
const naiveLayout = "2006-01-02T15:04:05"

var acceptedLayouts = []string{
	time.RFC3339Nano,
	naiveLayout,
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
}

// DATETIME column range.
const (
	minYear = 1000
	maxYear = 9999
)

// parseTimestamp accepts RFC 3339 or a naive timestamp.  Naive values are
// read as UTC; values with an offset are converted to UTC.  The result must
// fall within the DATETIME range.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		if y := t.Year(); y < minYear || y > maxYear {
			return time.Time{}, fmt.Errorf("timestamp %q outside years %d-%d", s, minYear, maxYear)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func formatTimestamp(t time.Time) string { return t.UTC().Format(naiveLayout) }
