package services

import (
	"context"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/dto"
)

// StayReaderSvc defines read operations for stay data
type StayReaderSvc interface {
	// GetStayByID retrieves a specific stay by its ID.
	GetStayByID(ctx context.Context, propertyID, stayID string, requestingUserID string) (*domain.Stay, error)

	// ListStays retrieves a paginated list of stays in a property.
	ListStays(ctx context.Context, propertyID string, requestingUserID string, params dto.ListStaysParams) (*dto.ListStaysResponse, error)
}

// StayWriterSvc defines write operations for stay data
type StayWriterSvc interface {
	// CheckIn opens a stay on an available room and marks the room occupied.
	CheckIn(ctx context.Context, propertyID string, req dto.CheckInRequest, creatorUserID string) (*domain.Stay, error)

	// CheckOut closes a stay, posts its total as an income ledger entry and
	// sends the room to cleaning.
	CheckOut(ctx context.Context, propertyID, stayID string, req dto.CheckOutRequest, requestingUserID string) (*domain.Stay, error)

	// Cancel voids an active stay without posting income and frees the room.
	Cancel(ctx context.Context, propertyID, stayID string, requestingUserID string) (*domain.Stay, error)
}

// StaySvcFacade combines all stay-related service interfaces
// This is a facade for clients that need access to all operations
type StaySvcFacade interface {
	StayReaderSvc
	StayWriterSvc
}
