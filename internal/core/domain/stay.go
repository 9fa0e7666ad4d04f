package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StayStatus indicates the state of a guest stay.
type StayStatus string

const (
	StayActive     StayStatus = "ACTIVE"
	StayCheckedOut StayStatus = "CHECKED_OUT"
	StayCancelled  StayStatus = "CANCELLED"
)

// Stay represents one guest occupying one room for a period. Checkout posts
// an income ledger entry for the stay total and frees the room.
type Stay struct {
	StayID       string          `json:"stayID"`     // Primary Key (e.g., UUID)
	PropertyID   string          `json:"propertyID"` // FK -> properties.property_id (Not Null)
	RoomID       string          `json:"roomID"`     // FK -> rooms.room_id (Not Null)
	GuestName    string          `json:"guestName"`
	GuestContact string          `json:"guestContact"` // Nullable phone or email
	CheckinAt    time.Time       `json:"checkinAt"`
	CheckoutAt   *time.Time      `json:"checkoutAt,omitempty"` // Set on checkout
	TotalAmount  decimal.Decimal `json:"totalAmount"`          // Agreed price for the whole stay
	Status       StayStatus      `json:"status"`
	AuditFields
}
