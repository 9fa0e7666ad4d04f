package services

import (
	"context"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/dto"
)

// PropertyReaderSvc defines read operations for property data
type PropertyReaderSvc interface {
	// GetPropertyByID retrieves a specific property by its ID.
	GetPropertyByID(ctx context.Context, propertyID string, requestingUserID string) (*domain.Property, error)

	// ListProperties retrieves the properties owned by the requesting user.
	ListProperties(ctx context.Context, requestingUserID string) ([]domain.Property, error)
}

// PropertyWriterSvc defines write operations for property data
type PropertyWriterSvc interface {
	// CreateProperty creates a new property owned by the creator.
	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, creatorUserID string) (*domain.Property, error)

	// UpdateProperty updates an existing property.
	UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, requestingUserID string) (*domain.Property, error)

	// DeleteProperty marks a property as deleted (soft delete).
	DeleteProperty(ctx context.Context, propertyID string, requestingUserID string) error
}

// PropertyAuthorizerSvc defines operations for property access checks
type PropertyAuthorizerSvc interface {
	// AuthorizeUserForProperty checks that the user owns the property.
	AuthorizeUserForProperty(ctx context.Context, userID, propertyID string) error
}

// PropertySvcFacade combines all property-related service interfaces
// This is a facade for clients that need access to all operations
type PropertySvcFacade interface {
	PropertyReaderSvc
	PropertyWriterSvc
	PropertyAuthorizerSvc
}
