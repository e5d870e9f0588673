package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Layouts accepted when reading timestamps. Zone-less layouts are interpreted
// in local time; the date-only form is midnight of that day.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTimestamp renders t in ISO-8601 form. The zero time renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp parses an ISO-8601 timestamp or a bare YYYY-MM-DD date.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// parseTimestampOr returns the parsed timestamp or fallback when s is
// missing or malformed.
func parseTimestampOr(s string, fallback time.Time) time.Time {
	t, err := ParseTimestamp(s)
	if err != nil {
		return fallback
	}
	return t
}

func now() time.Time {
	return time.Now().UTC()
}

// clamp constrains v to [lo, hi]; NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
