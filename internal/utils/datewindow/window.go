// Package datewindow resolves the cashbook's window selectors into concrete
// time intervals. All boundary arithmetic happens in the location of the
// anchor timestamp, so callers control the timezone by what they pass in.
package datewindow

import (
	"time"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// StartOfDay returns the first instant of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last included instant of t's calendar day at
// millisecond resolution, 23:59:59.999.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// MidDay returns t's calendar day at a fixed 12:00:00. Entries captured with
// only a calendar date are attributed to mid-day so the date survives
// timezone shifts on either side.
func MidDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// DayWindow returns the window covering exactly the anchor's calendar day.
// Day aggregates always use this window, whatever the active mode is.
func DayWindow(anchor time.Time) domain.TimeWindow {
	return domain.TimeWindow{Start: StartOfDay(anchor), End: EndOfDay(anchor)}
}

// MonthWindow returns the window covering the anchor's calendar month:
// from the month's first instant up to the last included instant before the
// next month begins. Month aggregates always use this window, whatever the
// active mode is.
func MonthWindow(anchor time.Time) domain.TimeWindow {
	firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	firstOfNext := firstOfMonth.AddDate(0, 1, 0)
	return domain.TimeWindow{Start: firstOfMonth, End: firstOfNext.Add(-time.Millisecond)}
}

// lastNDaysWindow spans exactly n calendar days ending on and including the
// anchor day.
func lastNDaysWindow(anchor time.Time, n int) domain.TimeWindow {
	return domain.TimeWindow{
		Start: StartOfDay(anchor.AddDate(0, 0, -(n - 1))),
		End:   EndOfDay(anchor),
	}
}

// Resolve maps the active window mode and its parameters to a concrete
// window. A custom range with from after to yields an empty window; nothing
// downstream may fail on it, range queries simply match no rows.
func Resolve(mode domain.WindowMode, anchor, rangeFrom, rangeTo time.Time) domain.TimeWindow {
	switch mode {
	case domain.WindowLast7Days:
		return lastNDaysWindow(anchor, 7)
	case domain.WindowLast30Days:
		return lastNDaysWindow(anchor, 30)
	case domain.WindowCustom:
		return domain.TimeWindow{Start: StartOfDay(rangeFrom), End: EndOfDay(rangeTo)}
	default:
		// WindowToday, and the safe fallback for anything unrecognized.
		return DayWindow(anchor)
	}
}
