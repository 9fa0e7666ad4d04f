package mapping

import (
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/models"
)

// ToModelProperty converts a domain Property to a model Property
func ToModelProperty(d domain.Property) models.Property {
	return models.Property{
		PropertyID:  d.PropertyID,
		Name:        d.Name,
		Address:     nullString(d.Address),
		OwnerUserID: d.OwnerUserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainProperty converts a model Property to a domain Property
func ToDomainProperty(m models.Property) domain.Property {
	return domain.Property{
		PropertyID:  m.PropertyID,
		Name:        m.Name,
		Address:     m.Address.String,
		OwnerUserID: m.OwnerUserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToDomainPropertySlice converts a slice of model Properties to domain Properties
func ToDomainPropertySlice(ms []models.Property) []domain.Property {
	ds := make([]domain.Property, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProperty(m)
	}
	return ds
}
