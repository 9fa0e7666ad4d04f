package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
)

// roomService implements the RoomSvcFacade interface
type roomService struct {
	BaseService
	roomRepo portsrepo.RoomRepositoryFacade
}

// RoomServiceOption is a functional option for configuring the room service
type RoomServiceOption func(*roomService)

// WithRoomPropertyAuthorizer sets the property authorizer for the room service.
func WithRoomPropertyAuthorizer(authorizer portssvc.PropertyAuthorizerSvc) RoomServiceOption {
	return func(s *roomService) {
		s.PropertyAuthorizer = authorizer
	}
}

// NewRoomService creates a new room service with the provided options
func NewRoomService(repo portsrepo.RoomRepositoryFacade, options ...RoomServiceOption) portssvc.RoomSvcFacade {
	svc := &roomService{
		roomRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure roomService implements the RoomSvcFacade interface
var _ portssvc.RoomSvcFacade = (*roomService)(nil)

// findRoomInProperty loads a room and verifies it belongs to the property the
// caller is acting on.
func (s *roomService) findRoomInProperty(ctx context.Context, propertyID, roomID string) (*domain.Room, error) {
	room, err := s.roomRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.PropertyID != propertyID {
		return nil, fmt.Errorf("%w: room %s not found in property %s", apperrors.ErrNotFound, roomID, propertyID)
	}
	return room, nil
}

func (s *roomService) CreateRoom(ctx context.Context, propertyID string, req dto.CreateRoomRequest, creatorUserID string) (*domain.Room, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, propertyID); err != nil {
		s.LogError(ctx, err, "User not authorized to create room",
			slog.String("user_id", creatorUserID),
			slog.String("property_id", propertyID))
		return nil, err
	}

	now := time.Now()
	room := domain.Room{
		RoomID:     uuid.NewString(),
		PropertyID: propertyID,
		Name:       req.Name,
		Status:     domain.RoomAvailable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
		s.LogError(ctx, err, "Failed to save room in repository",
			slog.String("property_id", propertyID),
			slog.String("room_name", req.Name))
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.LogInfo(ctx, "Room created successfully",
		slog.String("room_id", room.RoomID),
		slog.String("property_id", propertyID))
	return &room, nil
}

func (s *roomService) GetRoomByID(ctx context.Context, propertyID, roomID string, requestingUserID string) (*domain.Room, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}
	return s.findRoomInProperty(ctx, propertyID, roomID)
}

func (s *roomService) ListRooms(ctx context.Context, propertyID string, requestingUserID string) ([]domain.Room, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.ListRoomsByProperty(ctx, propertyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rooms",
			slog.String("property_id", propertyID))
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, propertyID, roomID string, req dto.UpdateRoomRequest, requestingUserID string) (*domain.Room, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	room, err := s.findRoomInProperty(ctx, propertyID, roomID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	room.LastUpdatedAt = time.Now()
	room.LastUpdatedBy = requestingUserID

	if err := s.roomRepo.UpdateRoom(ctx, *room); err != nil {
		s.LogError(ctx, err, "Failed to update room in repository",
			slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

func (s *roomService) SetRoomStatus(ctx context.Context, propertyID, roomID string, status domain.RoomStatus, requestingUserID string) (*domain.Room, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	room, err := s.findRoomInProperty(ctx, propertyID, roomID)
	if err != nil {
		return nil, err
	}

	if !room.Status.CanTransitionTo(status) {
		s.LogDebug(ctx, "Rejected room status transition",
			slog.String("room_id", roomID),
			slog.String("from", string(room.Status)),
			slog.String("to", string(status)))
		return nil, fmt.Errorf("%w: room cannot move from %s to %s", apperrors.ErrValidation, room.Status, status)
	}

	if err := s.roomRepo.UpdateRoomStatus(ctx, roomID, status, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to update room status",
			slog.String("room_id", roomID),
			slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}

	room.Status = status
	room.LastUpdatedAt = time.Now()
	room.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Room status updated",
		slog.String("room_id", roomID),
		slog.String("status", string(status)))
	return room, nil
}
