package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/todo/internal/printer"
)

func TestRelative(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		time     time.Time
		expected string
	}{
		"Same instant should be now": {
			time:     now,
			expected: "now",
		},
		"1 second ago": {
			time:     now.Add(-1 * time.Second),
			expected: "1 second ago",
		},
		"30 seconds ago": {
			time:     now.Add(-30 * time.Second),
			expected: "30 seconds ago",
		},
		"In 45 minutes": {
			time:     now.Add(45 * time.Minute),
			expected: "in 45 minutes",
		},
		"1 hour ago": {
			time:     now.Add(-1 * time.Hour),
			expected: "1 hour ago",
		},
		"In 5 hours": {
			time:     now.Add(5 * time.Hour),
			expected: "in 5 hours",
		},
		"In 1 day": {
			time:     now.Add(24 * time.Hour),
			expected: "in 1 day",
		},
		"7 days ago": {
			time:     now.Add(-7 * 24 * time.Hour),
			expected: "7 days ago",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, printer.Relative(tt.time, now))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	cet := time.FixedZone("CET", 3600)

	tests := map[string]struct {
		ts  time.Time
		exp string
	}{
		"Whole seconds":      {ts: time.Date(2025, 3, 1, 9, 30, 0, 0, cet), exp: "2025-03-01 08:30:00 UTC"},
		"Milliseconds":       {ts: time.Date(2025, 1, 1, 0, 0, 0, 500000000, time.UTC), exp: "2025-01-01 00:00:00.500 UTC"},
		"Microseconds":       {ts: time.Date(2025, 1, 1, 0, 0, 0, 123456000, time.UTC), exp: "2025-01-01 00:00:00.123456 UTC"},
		"Nanoseconds":        {ts: time.Date(2025, 1, 1, 0, 0, 0, 123, time.UTC), exp: "2025-01-01 00:00:00.000000123 UTC"},
		"Offset with millis": {ts: time.Date(2025, 1, 1, 1, 0, 0, 10000000, cet), exp: "2025-01-01 00:00:00.010 UTC"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, printer.FormatTimestamp(test.ts))
		})
	}
}
