package repositories

import (
	"context"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// RoomReader defines read operations for room data
type RoomReader interface {
	// FindRoomByID retrieves a specific room by its unique identifier.
	FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error)

	// ListRoomsByProperty retrieves all rooms of a property.
	ListRoomsByProperty(ctx context.Context, propertyID string) ([]domain.Room, error)

	// FindRoomNamesByIDs resolves room IDs to their display names. IDs that do
	// not resolve are simply absent from the result.
	FindRoomNamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error)
}

// RoomWriter defines write operations for room data
type RoomWriter interface {
	// SaveRoom persists a new room.
	SaveRoom(ctx context.Context, room domain.Room) error

	// UpdateRoom updates an existing room's details.
	UpdateRoom(ctx context.Context, room domain.Room) error

	// UpdateRoomStatus updates only a room's status.
	UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, updatedByUserID string) error
}

// RoomRepositoryFacade combines all room-related repository interfaces
// This is a facade for clients that need access to all operations
type RoomRepositoryFacade interface {
	RoomReader
	RoomWriter
}
