package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind indicates whether a ledger entry adds to or takes from the till.
type EntryKind string

const (
	Income  EntryKind = "INCOME"
	Expense EntryKind = "EXPENSE"
)

// Label returns the display form used in lists and exports.
func (k EntryKind) Label() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return string(k)
	}
}

// PaymentMethod indicates how the money moved.
type PaymentMethod string

const (
	Cash     PaymentMethod = "CASH"
	Transfer PaymentMethod = "TRANSFER"
	Card     PaymentMethod = "CARD"
)

// Label returns the display form used in lists and exports.
func (m PaymentMethod) Label() string {
	switch m {
	case Cash:
		return "Cash"
	case Transfer:
		return "Transfer"
	case Card:
		return "Card"
	default:
		return string(m)
	}
}

// LedgerEntry represents a single cash movement of a property.
// Entries are immutable once created and are never deleted in normal operation.
type LedgerEntry struct {
	EntryID    string          `json:"entryID"`          // Primary Key (e.g., UUID)
	PropertyID string          `json:"propertyID"`       // FK -> properties.property_id (Not Null)
	Kind       EntryKind       `json:"kind"`             // INCOME or EXPENSE (Not Null)
	Amount     decimal.Decimal `json:"amount"`           // Non-negative; precise decimal type
	Method     PaymentMethod   `json:"method"`           // CASH, TRANSFER or CARD (Not Null)
	Note       string          `json:"note"`             // Nullable free text
	OccurredAt time.Time       `json:"occurredAt"`       // Timestamp the entry is attributed to, not creation time
	StayID     *string         `json:"stayID,omitempty"` // Nullable FK -> stays.stay_id
	RoomID     *string         `json:"roomID,omitempty"` // Nullable FK -> rooms.room_id
	AuditFields
}

// SignedAmount returns the entry's contribution to an aggregate:
// +Amount for income, -Amount for expense.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind == Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// AggregateInput is the light projection used by the day and month total
// queries: kind and amount only, no row identity.
type AggregateInput struct {
	Kind   EntryKind       `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// AggregateTotals holds the reduced totals of one time window.
type AggregateTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"` // Income minus Expense
}

// ZeroTotals returns an AggregateTotals with all three values at zero.
func ZeroTotals() AggregateTotals {
	return AggregateTotals{Income: decimal.Zero, Expense: decimal.Zero, Profit: decimal.Zero}
}
