package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// DateOnly is the calendar date layout used by cashbook requests and responses.
const DateOnly = "2006-01-02"

// SubmitExpenseRequest defines a manually entered expense. Amount and date
// arrive as raw strings; the cashbook service owns their validation so a bad
// form never reaches the ledger.
type SubmitExpenseRequest struct {
	Amount string               `json:"amount" binding:"required"`
	Method domain.PaymentMethod `json:"method" binding:"required,oneof=CASH TRANSFER CARD"`
	Note   string               `json:"note"`
	Date   string               `json:"date" binding:"required,dateonly"` // calendar date, YYYY-MM-DD
	RoomID *string              `json:"roomID"`
}

// SetWindowModeRequest switches the cashbook's active window mode.
type SetWindowModeRequest struct {
	Mode domain.WindowMode `json:"mode" binding:"required,oneof=TODAY LAST_7_DAYS LAST_30_DAYS CUSTOM_RANGE"`
}

// SetAnchorRequest moves the cashbook's anchor date.
type SetAnchorRequest struct {
	AnchorDate string `json:"anchorDate" binding:"required,dateonly"` // calendar date, YYYY-MM-DD
}

// SetCustomRangeRequest sets explicit window bounds.
type SetCustomRangeRequest struct {
	From string `json:"from" binding:"required,dateonly"` // calendar date, YYYY-MM-DD
	To   string `json:"to" binding:"required,dateonly"`   // calendar date, YYYY-MM-DD
}

// TotalsResponse carries one set of aggregate totals.
type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// ToTotalsResponse converts domain.AggregateTotals to TotalsResponse DTO.
func ToTotalsResponse(t domain.AggregateTotals) TotalsResponse {
	return TotalsResponse{
		Income:  t.Income,
		Expense: t.Expense,
		Profit:  t.Profit,
	}
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID    string          `json:"entryID"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Note       string          `json:"note"`
	OccurredAt time.Time       `json:"occurredAt"`
	RoomID     *string         `json:"roomID,omitempty"`
	RoomName   string          `json:"roomName,omitempty"`
	StayID     *string         `json:"stayID,omitempty"`
}

// WindowResponse is the resolved active window.
type WindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotFailureResponse reports one refresh slot that could not be filled.
type SlotFailureResponse struct {
	Slot  string `json:"slot"`
	Error string `json:"error"`
}

// CashbookResponse is the full state of a cashbook session as the client
// sees it.
type CashbookResponse struct {
	PropertyID  string                `json:"propertyID"`
	WindowMode  domain.WindowMode     `json:"windowMode"`
	AnchorDate  string                `json:"anchorDate"`
	RangeFrom   string                `json:"rangeFrom"`
	RangeTo     string                `json:"rangeTo"`
	Window      WindowResponse        `json:"window"`
	Entries     []LedgerEntryResponse `json:"entries"`
	DayTotals   TotalsResponse        `json:"dayTotals"`
	MonthTotals TotalsResponse        `json:"monthTotals"`
	RangeTotals TotalsResponse        `json:"rangeTotals"`
	Failures    []SlotFailureResponse `json:"failures,omitempty"`
	Refreshing  bool                  `json:"refreshing"`
}

// ToCashbookResponse converts a domain.CashbookSnapshot to CashbookResponse
// DTO, joining each entry with its resolved room name.
func ToCashbookResponse(s *domain.CashbookSnapshot) CashbookResponse {
	entries := make([]LedgerEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entry := LedgerEntryResponse{
			EntryID:    e.EntryID,
			Kind:       string(e.Kind),
			Amount:     e.Amount,
			Method:     string(e.Method),
			Note:       e.Note,
			OccurredAt: e.OccurredAt,
			RoomID:     e.RoomID,
			StayID:     e.StayID,
		}
		if e.RoomID != nil {
			entry.RoomName = s.RoomNames[*e.RoomID]
		}
		entries[i] = entry
	}

	failures := make([]SlotFailureResponse, len(s.Failures))
	for i, f := range s.Failures {
		failures[i] = SlotFailureResponse{
			Slot:  string(f.Slot),
			Error: f.Err.Error(),
		}
	}

	return CashbookResponse{
		PropertyID:  s.PropertyID,
		WindowMode:  s.WindowMode,
		AnchorDate:  s.AnchorDate.Format(DateOnly),
		RangeFrom:   s.RangeFrom.Format(DateOnly),
		RangeTo:     s.RangeTo.Format(DateOnly),
		Window:      WindowResponse{Start: s.Window.Start, End: s.Window.End},
		Entries:     entries,
		DayTotals:   ToTotalsResponse(s.DayTotals),
		MonthTotals: ToTotalsResponse(s.MonthTotals),
		RangeTotals: ToTotalsResponse(s.RangeTotals),
		Failures:    failures,
		Refreshing:  s.Refreshing,
	}
}
