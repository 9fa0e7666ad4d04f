package mapping

import (
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		PropertyID:  d.PropertyID,
		Kind:        string(d.Kind),
		Amount:      d.Amount,
		Method:      string(d.Method),
		Note:        nullString(d.Note),
		OccurredAt:  d.OccurredAt,
		StayID:      nullStringFromPtr(d.StayID),
		RoomID:      nullStringFromPtr(d.RoomID),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		PropertyID:  m.PropertyID,
		Kind:        domain.EntryKind(m.Kind),
		Amount:      m.Amount,
		Method:      domain.PaymentMethod(m.Method),
		Note:        m.Note.String,
		OccurredAt:  m.OccurredAt,
		StayID:      ptrFromNullString(m.StayID),
		RoomID:      ptrFromNullString(m.RoomID),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
