package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database representation of one cash movement.
type LedgerEntry struct {
	EntryID    string          `db:"entry_id"`
	PropertyID string          `db:"property_id"`
	Kind       string          `db:"kind"`
	Amount     decimal.Decimal `db:"amount"`
	Method     string          `db:"method"`
	Note       sql.NullString  `db:"note"`
	OccurredAt time.Time       `db:"occurred_at"`
	StayID     sql.NullString  `db:"stay_id"`
	RoomID     sql.NullString  `db:"room_id"`
	AuditFields
}
