package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Stay is the database representation of a guest stay.
type Stay struct {
	StayID       string          `db:"stay_id"`
	PropertyID   string          `db:"property_id"`
	RoomID       string          `db:"room_id"`
	GuestName    string          `db:"guest_name"`
	GuestContact sql.NullString  `db:"guest_contact"`
	CheckinAt    time.Time       `db:"checkin_at"`
	CheckoutAt   sql.NullTime    `db:"checkout_at"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	Status       string          `db:"status"`
	AuditFields
}
