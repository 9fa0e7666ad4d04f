package repositories

import (
	"context"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// LedgerEntryReader defines read operations for ledger entry data
type LedgerEntryReader interface {
	// FindEntriesByDateRange retrieves all entries of a property whose occurredAt
	// falls inside the window, bounds included, ordered by occurredAt descending.
	FindEntriesByDateRange(ctx context.Context, propertyID string, window domain.TimeWindow) ([]domain.LedgerEntry, error)

	// FindAggregateInputsByDateRange retrieves only the kind and amount of the
	// entries inside the window. This is the projection the totals are computed
	// from; full rows are never loaded for aggregation.
	FindAggregateInputsByDateRange(ctx context.Context, propertyID string, window domain.TimeWindow) ([]domain.AggregateInput, error)
}

// LedgerEntryWriter defines write operations for ledger entry data
type LedgerEntryWriter interface {
	// SaveEntry persists a new ledger entry and returns the persisted entry ID.
	// A write that yields no identifier is a creation failure.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) (string, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
