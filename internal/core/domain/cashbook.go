package domain

import "time"

// WindowMode selects how the cashbook's active time window is derived from
// the anchor date (or, for CUSTOM_RANGE, from explicit bounds).
type WindowMode string

const (
	WindowToday      WindowMode = "TODAY"
	WindowLast7Days  WindowMode = "LAST_7_DAYS"
	WindowLast30Days WindowMode = "LAST_30_DAYS"
	WindowCustom     WindowMode = "CUSTOM_RANGE"
)

// IsValid reports whether m is one of the four known window modes.
func (m WindowMode) IsValid() bool {
	switch m {
	case WindowToday, WindowLast7Days, WindowLast30Days, WindowCustom:
		return true
	}
	return false
}

// TimeWindow is a closed interval of timestamps. End is the last included
// instant at millisecond resolution (end of day is 23:59:59.999).
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsEmpty reports whether the window matches no instant at all, which
// happens when a custom range is entered with from after to.
func (w TimeWindow) IsEmpty() bool {
	return w.End.Before(w.Start)
}

// Contains reports whether t falls inside the window, bounds included.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// RefreshSlot names one of the three independently fetched parts of a
// cashbook refresh.
type RefreshSlot string

const (
	SlotEntries     RefreshSlot = "ENTRIES"
	SlotDayTotals   RefreshSlot = "DAY_TOTALS"
	SlotMonthTotals RefreshSlot = "MONTH_TOTALS"
)

// SlotFailure records that one refresh slot could not be filled. The other
// slots are unaffected; the failing slot falls back to its zero value.
type SlotFailure struct {
	Slot RefreshSlot
	Err  error
}

// LedgerExport is a finished export workbook ready to be served as a
// download.
type LedgerExport struct {
	Filename string
	Content  []byte
}

// CashbookSnapshot is a copy of one cashbook session's state. Snapshots are
// what leaves the cashbook service; the live session is never exposed.
type CashbookSnapshot struct {
	PropertyID  string            `json:"propertyID"`
	WindowMode  WindowMode        `json:"windowMode"`
	AnchorDate  time.Time         `json:"anchorDate"`
	RangeFrom   time.Time         `json:"rangeFrom"`
	RangeTo     time.Time         `json:"rangeTo"`
	Window      TimeWindow        `json:"window"`      // resolved active window
	Entries     []LedgerEntry     `json:"entries"`     // occurredAt descending
	RoomNames   map[string]string `json:"roomNames"`   // resolved labels for referenced rooms
	DayTotals   AggregateTotals   `json:"dayTotals"`   // anchor day, independent of mode
	MonthTotals AggregateTotals   `json:"monthTotals"` // anchor month, independent of mode
	RangeTotals AggregateTotals   `json:"rangeTotals"` // derived from Entries
	Failures    []SlotFailure     `json:"-"`           // slot failures of the last refresh
	Generation  uint64            `json:"-"`           // internal liveness counter
	Refreshing  bool              `json:"refreshing"`
}
