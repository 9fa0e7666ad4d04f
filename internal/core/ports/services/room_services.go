package services

import (
	"context"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/dto"
)

// RoomReaderSvc defines read operations for room data
type RoomReaderSvc interface {
	// GetRoomByID retrieves a specific room by its ID.
	GetRoomByID(ctx context.Context, propertyID, roomID string, requestingUserID string) (*domain.Room, error)

	// ListRooms retrieves all rooms of a property.
	ListRooms(ctx context.Context, propertyID string, requestingUserID string) ([]domain.Room, error)
}

// RoomWriterSvc defines write operations for room data
type RoomWriterSvc interface {
	// CreateRoom creates a new room in a property.
	CreateRoom(ctx context.Context, propertyID string, req dto.CreateRoomRequest, creatorUserID string) (*domain.Room, error)

	// UpdateRoom updates an existing room's details.
	UpdateRoom(ctx context.Context, propertyID, roomID string, req dto.UpdateRoomRequest, requestingUserID string) (*domain.Room, error)

	// SetRoomStatus moves a room through its status machine. Transitions not
	// allowed by the machine are rejected.
	SetRoomStatus(ctx context.Context, propertyID, roomID string, status domain.RoomStatus, requestingUserID string) (*domain.Room, error)
}

// RoomSvcFacade combines all room-related service interfaces
// This is a facade for clients that need access to all operations
type RoomSvcFacade interface {
	RoomReaderSvc
	RoomWriterSvc
}
