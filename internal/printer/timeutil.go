package printer

import (
	"fmt"
	"time"
)

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC". Sub-second precision is printed only when
// present, with 3, 6 or 9 digits (millis, micros or nanos).
func FormatTimestamp(t time.Time) string {
	t = t.UTC()

	layout := "2006-01-02 15:04:05"
	switch ns := t.Nanosecond(); {
	case ns == 0:
	case ns%int(time.Millisecond) == 0:
		layout += ".000"
	case ns%int(time.Microsecond) == 0:
		layout += ".000000"
	default:
		layout += ".000000000"
	}

	return t.Format(layout + " UTC")
}

// Relative returns how far t is from now in a human-readable way, using the
// biggest unit that fits (seconds, minutes, hours or days).
// Examples: "in 3 days", "5 minutes ago", "now".
func Relative(t, now time.Time) string {
	diff := t.Sub(now)
	if diff > -time.Second && diff < time.Second {
		return "now"
	}

	future := diff > 0
	if !future {
		diff = -diff
	}

	var amount string
	switch {
	case diff < time.Minute:
		amount = plural(int(diff.Seconds()), "second")
	case diff < time.Hour:
		amount = plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		amount = plural(int(diff.Hours()), "hour")
	default:
		amount = plural(int(diff.Hours()/24), "day")
	}

	if future {
		return "in " + amount
	}
	return amount + " ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
