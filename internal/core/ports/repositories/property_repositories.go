package repositories

import (
	"context"
	"time"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// PropertyReader defines read operations for property data
type PropertyReader interface {
	// FindPropertyByID retrieves a specific property by its unique identifier.
	FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error)

	// ListPropertiesByOwner retrieves all non-deleted properties owned by a user.
	ListPropertiesByOwner(ctx context.Context, ownerUserID string) ([]domain.Property, error)
}

// PropertyWriter defines write operations for property data
type PropertyWriter interface {
	// SaveProperty persists a new property.
	SaveProperty(ctx context.Context, property domain.Property) error

	// UpdateProperty updates an existing property's details.
	UpdateProperty(ctx context.Context, property domain.Property) error
}

// PropertyLifecycleManager defines operations for managing property lifecycle
type PropertyLifecycleManager interface {
	// MarkPropertyDeleted marks a property as deleted (soft delete).
	MarkPropertyDeleted(ctx context.Context, propertyID string, deletedAt time.Time, deletedBy string) error
}

// PropertyRepositoryFacade combines all property-related repository interfaces
// This is a facade for clients that need access to all operations
type PropertyRepositoryFacade interface {
	PropertyReader
	PropertyWriter
	PropertyLifecycleManager
}
