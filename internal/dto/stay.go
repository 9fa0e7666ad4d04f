package dto

import (
	"time"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckInRequest defines the data needed to open a stay.
type CheckInRequest struct {
	RoomID       string     `json:"roomID" binding:"required"`
	GuestName    string     `json:"guestName" binding:"required"`
	GuestContact string     `json:"guestContact"`
	CheckinAt    *time.Time `json:"checkinAt"` // defaults to now when omitted
}

// CheckOutRequest defines the data needed to close a stay.
type CheckOutRequest struct {
	TotalAmount   decimal.Decimal      `json:"totalAmount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH TRANSFER CARD"`
	Note          string               `json:"note"`
}

// ListStaysParams defines query parameters for listing stays.
type ListStaysParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// StayResponse defines the data returned for a stay.
type StayResponse struct {
	StayID       string            `json:"stayID"`
	PropertyID   string            `json:"propertyID"`
	RoomID       string            `json:"roomID"`
	GuestName    string            `json:"guestName"`
	GuestContact string            `json:"guestContact"`
	CheckinAt    time.Time         `json:"checkinAt"`
	CheckoutAt   *time.Time        `json:"checkoutAt,omitempty"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Status       domain.StayStatus `json:"status"`
}

// ToStayResponse converts a domain.Stay to StayResponse DTO.
func ToStayResponse(s *domain.Stay) StayResponse {
	return StayResponse{
		StayID:       s.StayID,
		PropertyID:   s.PropertyID,
		RoomID:       s.RoomID,
		GuestName:    s.GuestName,
		GuestContact: s.GuestContact,
		CheckinAt:    s.CheckinAt,
		CheckoutAt:   s.CheckoutAt,
		TotalAmount:  s.TotalAmount,
		Status:       s.Status,
	}
}

// ListStaysResponse wraps a page of stays with the token for the next page.
type ListStaysResponse struct {
	Stays     []StayResponse `json:"stays"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToListStaysResponse converts a slice of domain.Stay to ListStaysResponse DTO
func ToListStaysResponse(stays []domain.Stay, nextToken *string) *ListStaysResponse {
	responses := make([]StayResponse, len(stays))
	for i, s := range stays {
		responses[i] = ToStayResponse(&s)
	}
	return &ListStaysResponse{
		Stays:     responses,
		NextToken: nextToken,
	}
}
