package repositories

import (
	"context"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// StayReader defines read operations for stay data
type StayReader interface {
	// FindStayByID retrieves a specific stay by its unique identifier.
	FindStayByID(ctx context.Context, stayID string) (*domain.Stay, error)

	// ListStaysByProperty retrieves a paginated list of stays for a property
	// using token-based pagination, newest check-in first. It returns the
	// stays, a token for the next page, and an error.
	ListStaysByProperty(ctx context.Context, propertyID string, limit int, nextToken *string) ([]domain.Stay, *string, error)
}

// StayWriter defines write operations for stay data
type StayWriter interface {
	// SaveStay persists a new stay and moves its room to the given status
	// within a single transaction.
	SaveStay(ctx context.Context, stay domain.Stay, roomStatus domain.RoomStatus) error

	// FinalizeStay updates a stay's terminal state, optionally records a ledger
	// entry for it, and moves its room to the given status, all within a single
	// transaction. entry is nil for cancellations.
	FinalizeStay(ctx context.Context, stay domain.Stay, entry *domain.LedgerEntry, roomStatus domain.RoomStatus) error
}

// StayRepositoryFacade combines all stay-related repository interfaces
// This is a facade for clients that need access to all operations
type StayRepositoryFacade interface {
	StayReader
	StayWriter
}

// StayRepositoryWithTx extends StayRepositoryFacade with transaction capabilities
type StayRepositoryWithTx interface {
	StayRepositoryFacade
	TransactionManager
}
