package dto

import (
	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// CreateRoomRequest defines the data needed to create a room.
type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateRoomRequest defines the data allowed for updating a room.
type UpdateRoomRequest struct {
	Name *string `json:"name"`
}

// SetRoomStatusRequest moves a room to a new status.
type SetRoomStatusRequest struct {
	Status domain.RoomStatus `json:"status" binding:"required,oneof=AVAILABLE OCCUPIED CLEANING MAINTENANCE"`
}

// RoomResponse defines the data returned for a room.
type RoomResponse struct {
	RoomID     string            `json:"roomID"`
	PropertyID string            `json:"propertyID"`
	Name       string            `json:"name"`
	Status     domain.RoomStatus `json:"status"`
}

// ToRoomResponse converts a domain.Room to RoomResponse DTO.
func ToRoomResponse(r *domain.Room) RoomResponse {
	return RoomResponse{
		RoomID:     r.RoomID,
		PropertyID: r.PropertyID,
		Name:       r.Name,
		Status:     r.Status,
	}
}

// ListRoomsResponse wraps the list of rooms.
type ListRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// ToListRoomsResponse converts a slice of domain.Room to ListRoomsResponse DTO
func ToListRoomsResponse(rooms []domain.Room) ListRoomsResponse {
	responses := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		responses[i] = ToRoomResponse(&r)
	}
	return ListRoomsResponse{
		Rooms: responses,
	}
}
