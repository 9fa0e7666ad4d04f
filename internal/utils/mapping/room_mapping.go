package mapping

import (
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/models"
)

// ToModelRoom converts a domain Room to a model Room
func ToModelRoom(d domain.Room) models.Room {
	return models.Room{
		RoomID:      d.RoomID,
		PropertyID:  d.PropertyID,
		Name:        d.Name,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRoom converts a model Room to a domain Room
func ToDomainRoom(m models.Room) domain.Room {
	return domain.Room{
		RoomID:      m.RoomID,
		PropertyID:  m.PropertyID,
		Name:        m.Name,
		Status:      domain.RoomStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRoomSlice converts a slice of model Rooms to domain Rooms
func ToDomainRoomSlice(ms []models.Room) []domain.Room {
	ds := make([]domain.Room, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRoom(m)
	}
	return ds
}
