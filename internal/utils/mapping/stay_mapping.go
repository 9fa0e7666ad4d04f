package mapping

import (
	"database/sql"
	"time"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/models"
)

// ToModelStay converts a domain Stay to a model Stay
func ToModelStay(d domain.Stay) models.Stay {
	checkoutAt := sql.NullTime{}
	if d.CheckoutAt != nil {
		checkoutAt = sql.NullTime{Time: *d.CheckoutAt, Valid: true}
	}
	return models.Stay{
		StayID:       d.StayID,
		PropertyID:   d.PropertyID,
		RoomID:       d.RoomID,
		GuestName:    d.GuestName,
		GuestContact: nullString(d.GuestContact),
		CheckinAt:    d.CheckinAt,
		CheckoutAt:   checkoutAt,
		TotalAmount:  d.TotalAmount,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStay converts a model Stay to a domain Stay
func ToDomainStay(m models.Stay) domain.Stay {
	var checkoutAt *time.Time
	if m.CheckoutAt.Valid {
		t := m.CheckoutAt.Time
		checkoutAt = &t
	}
	return domain.Stay{
		StayID:       m.StayID,
		PropertyID:   m.PropertyID,
		RoomID:       m.RoomID,
		GuestName:    m.GuestName,
		GuestContact: m.GuestContact.String,
		CheckinAt:    m.CheckinAt,
		CheckoutAt:   checkoutAt,
		TotalAmount:  m.TotalAmount,
		Status:       domain.StayStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStaySlice converts a slice of model Stays to domain Stays
func ToDomainStaySlice(ms []models.Stay) []domain.Stay {
	ds := make([]domain.Stay, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStay(m)
	}
	return ds
}
