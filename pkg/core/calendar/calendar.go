// Package calendar provides the pure date arithmetic used by the scheduling
// core. All dates are normalized to midnight UTC so that day comparisons are
// exact regardless of the time-of-day carried by the input.
package calendar

import (
	"fmt"
	"time"
)

// Normalize truncates a time to midnight UTC on the same calendar date.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// MonthDays enumerates every calendar day of the month containing t,
// in ascending order.
func MonthDays(t time.Time) []time.Time {
	start := MonthStart(t)
	end := MonthEnd(t)
	days := make([]time.Time, 0, end.Day())
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDays returns t shifted by the given number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysBetween returns the number of whole calendar days from a to b
// (positive when b is after a).
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// WeeksInMonth returns the number of week spans covered by the month of t:
// 4 for a 28-day February, 5 for every longer month.
func WeeksInMonth(t time.Time) int {
	return (MonthEnd(t).Day()-1)/7 + 1
}

// MonthKey returns the history-store key for the month of t, in the form
// "<year>-<zeroBasedMonth>" (January = 0).
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month())-1)
}

// PreviousMonth returns the first day of the month before the month of t.
func PreviousMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, -1, 0)
}
