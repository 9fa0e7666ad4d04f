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

// stayService implements the StaySvcFacade interface
type stayService struct {
	BaseService
	stayRepo portsrepo.StayRepositoryFacade
	roomRepo portsrepo.RoomReader
}

// StayServiceOption is a functional option for configuring the stay service
type StayServiceOption func(*stayService)

// WithStayPropertyAuthorizer sets the property authorizer for the stay service.
func WithStayPropertyAuthorizer(authorizer portssvc.PropertyAuthorizerSvc) StayServiceOption {
	return func(s *stayService) {
		s.PropertyAuthorizer = authorizer
	}
}

// NewStayService creates a new stay service with the provided options
func NewStayService(stayRepo portsrepo.StayRepositoryFacade, roomRepo portsrepo.RoomReader, options ...StayServiceOption) portssvc.StaySvcFacade {
	svc := &stayService{
		stayRepo: stayRepo,
		roomRepo: roomRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure stayService implements the StaySvcFacade interface
var _ portssvc.StaySvcFacade = (*stayService)(nil)

// findStayInProperty loads a stay and verifies it belongs to the property the
// caller is acting on.
func (s *stayService) findStayInProperty(ctx context.Context, propertyID, stayID string) (*domain.Stay, error) {
	stay, err := s.stayRepo.FindStayByID(ctx, stayID)
	if err != nil {
		return nil, err
	}
	if stay.PropertyID != propertyID {
		return nil, fmt.Errorf("%w: stay %s not found in property %s", apperrors.ErrNotFound, stayID, propertyID)
	}
	return stay, nil
}

func (s *stayService) CheckIn(ctx context.Context, propertyID string, req dto.CheckInRequest, creatorUserID string) (*domain.Stay, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, propertyID); err != nil {
		s.LogError(ctx, err, "User not authorized to check in a guest",
			slog.String("user_id", creatorUserID),
			slog.String("property_id", propertyID))
		return nil, err
	}

	room, err := s.roomRepo.FindRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.PropertyID != propertyID {
		return nil, fmt.Errorf("%w: room %s not found in property %s", apperrors.ErrNotFound, req.RoomID, propertyID)
	}
	if !room.Status.CanTransitionTo(domain.RoomOccupied) {
		return nil, fmt.Errorf("%w: room %s is %s and cannot take a check-in", apperrors.ErrValidation, room.Name, room.Status)
	}

	now := time.Now()
	checkinAt := now
	if req.CheckinAt != nil {
		checkinAt = *req.CheckinAt
	}

	stay := domain.Stay{
		StayID:       uuid.NewString(),
		PropertyID:   propertyID,
		RoomID:       req.RoomID,
		GuestName:    req.GuestName,
		GuestContact: req.GuestContact,
		CheckinAt:    checkinAt,
		Status:       domain.StayActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.stayRepo.SaveStay(ctx, stay, domain.RoomOccupied); err != nil {
		s.LogError(ctx, err, "Failed to save stay in repository",
			slog.String("property_id", propertyID),
			slog.String("room_id", req.RoomID))
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	s.LogInfo(ctx, "Guest checked in",
		slog.String("stay_id", stay.StayID),
		slog.String("room_id", req.RoomID))
	return &stay, nil
}

func (s *stayService) GetStayByID(ctx context.Context, propertyID, stayID string, requestingUserID string) (*domain.Stay, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}
	return s.findStayInProperty(ctx, propertyID, stayID)
}

func (s *stayService) ListStays(ctx context.Context, propertyID string, requestingUserID string, params dto.ListStaysParams) (*dto.ListStaysResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	stays, nextToken, err := s.stayRepo.ListStaysByProperty(ctx, propertyID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stays",
			slog.String("property_id", propertyID))
		return nil, fmt.Errorf("failed to list stays: %w", err)
	}

	return dto.ToListStaysResponse(stays, nextToken), nil
}

// CheckOut closes an active stay, posts its total to the ledger as income and
// sends the room to cleaning. All three writes land in one transaction.
func (s *stayService) CheckOut(ctx context.Context, propertyID, stayID string, req dto.CheckOutRequest, requestingUserID string) (*domain.Stay, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	stay, err := s.findStayInProperty(ctx, propertyID, stayID)
	if err != nil {
		return nil, err
	}
	if stay.Status != domain.StayActive {
		return nil, fmt.Errorf("%w: stay %s is already %s", apperrors.ErrValidation, stayID, stay.Status)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	now := time.Now()
	stay.CheckoutAt = &now
	stay.TotalAmount = req.TotalAmount
	stay.Status = domain.StayCheckedOut
	stay.LastUpdatedAt = now
	stay.LastUpdatedBy = requestingUserID

	note := req.Note
	if note == "" {
		note = fmt.Sprintf("Stay checkout - %s", stay.GuestName)
	}

	entry := domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		PropertyID: propertyID,
		Kind:       domain.Income,
		Amount:     req.TotalAmount,
		Method:     req.PaymentMethod,
		Note:       note,
		OccurredAt: now,
		StayID:     &stay.StayID,
		RoomID:     &stay.RoomID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.stayRepo.FinalizeStay(ctx, *stay, &entry, domain.RoomCleaning); err != nil {
		s.LogError(ctx, err, "Failed to finalize checkout",
			slog.String("stay_id", stayID))
		return nil, fmt.Errorf("failed to check out: %w", err)
	}

	s.LogInfo(ctx, "Guest checked out",
		slog.String("stay_id", stayID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", req.TotalAmount.String()))
	return stay, nil
}

// Cancel voids an active stay. No income is posted and the room goes straight
// back to available.
func (s *stayService) Cancel(ctx context.Context, propertyID, stayID string, requestingUserID string) (*domain.Stay, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	stay, err := s.findStayInProperty(ctx, propertyID, stayID)
	if err != nil {
		return nil, err
	}
	if stay.Status != domain.StayActive {
		return nil, fmt.Errorf("%w: stay %s is already %s", apperrors.ErrValidation, stayID, stay.Status)
	}

	now := time.Now()
	stay.Status = domain.StayCancelled
	stay.LastUpdatedAt = now
	stay.LastUpdatedBy = requestingUserID

	if err := s.stayRepo.FinalizeStay(ctx, *stay, nil, domain.RoomAvailable); err != nil {
		s.LogError(ctx, err, "Failed to cancel stay",
			slog.String("stay_id", stayID))
		return nil, fmt.Errorf("failed to cancel stay: %w", err)
	}

	s.LogInfo(ctx, "Stay cancelled", slog.String("stay_id", stayID))
	return stay, nil
}
