// Package datemath holds the calendar-day arithmetic shared by the
// aggregation, calendar, and view-model layers. All functions operate on
// whole days; time-of-day and timezone offsets are normalized away first.
package datemath

import "time"

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ExpandRange returns every calendar day from start to end inclusive,
// ascending. A single-day range yields one entry. An inverted range yields
// nil; callers validate order at the boundary.
func ExpandRange(start, end time.Time) []time.Time {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return nil
	}

	days := make([]time.Time, 0, InclusiveDuration(start, end))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// InclusiveDuration counts the calendar days from start to end, counting
// both endpoints. The result is always >= 1; an inverted pair is normalized
// so the function is total even when upstream validation was skipped.
func InclusiveDuration(start, end time.Time) int {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		start, end = end, start
	}

	days := 1
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// DaysUntil returns the signed whole-day difference between target and
// reference. Zero means the same calendar day, positive means target is in
// the future.
func DaysUntil(target, reference time.Time) int {
	target = Midnight(target)
	reference = Midnight(reference)

	days := 0
	switch {
	case target.After(reference):
		for d := reference; d.Before(target); d = d.AddDate(0, 0, 1) {
			days++
		}
	case target.Before(reference):
		for d := target; d.Before(reference); d = d.AddDate(0, 0, 1) {
			days--
		}
	}
	return days
}

// SameCalendarDay reports whether a and b fall on the same calendar day,
// ignoring time-of-day.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey formats t as YYYY-MM-DD, the canonical map key for day lookups.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
