package stats

import (
	"fmt"
	"time"
)

const (
	secondsPerDay   = 24 * 60 * 60
	daysPerYear     = 365
	timestampLayout = "2006-01-02 15:04:05"
)

// FormatDuration renders d as "HHh MMm SSs". The clock part is always
// computed modulo one day. With withDays the day count is prefixed; with
// maybeYears a year count is additionally split off when at least one full
// year accumulated (used only for total server playtime).
func FormatDuration(d time.Duration, withDays, maybeYears bool) string {
	total := int64(d / time.Second)
	days := total / secondsPerDay
	rem := total % secondsPerDay

	clock := fmt.Sprintf("%02dh %02dm %02ds", rem/3600, (rem%3600)/60, rem%60)
	if !withDays {
		return clock
	}
	if maybeYears {
		if years := days / daysPerYear; years > 0 {
			return fmt.Sprintf("%d years, %02d days, %s", years, days%daysPerYear, clock)
		}
	}
	return fmt.Sprintf("%02d days, %s", days, clock)
}

// formatTime renders a timestamp for the report, or a dash when unset.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(timestampLayout)
}
