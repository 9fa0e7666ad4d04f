package services

import (
	"context"
	"time"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/dto"
)

// CashbookReaderSvc defines read operations on a cashbook session
type CashbookReaderSvc interface {
	// Snapshot returns the current state of the user's cashbook session for a
	// property, opening the session with default settings on first access.
	Snapshot(ctx context.Context, userID, propertyID string) (*domain.CashbookSnapshot, error)

	// Export assembles the current session's entries and totals into a
	// downloadable workbook. An empty entry list refuses the export.
	Export(ctx context.Context, userID, propertyID string) (*domain.LedgerExport, error)
}

// CashbookWriterSvc defines operations that change a cashbook session's
// settings or data. Every one of them ends in a full refresh; the returned
// snapshot reflects the post-refresh state.
type CashbookWriterSvc interface {
	// Refresh re-queries the entry list, day totals and month totals.
	Refresh(ctx context.Context, userID, propertyID string) (*domain.CashbookSnapshot, error)

	// SetWindowMode switches the active window mode.
	SetWindowMode(ctx context.Context, userID, propertyID string, mode domain.WindowMode) (*domain.CashbookSnapshot, error)

	// SetAnchorDate moves the anchor date. Outside of custom-range mode this
	// also resets the custom bounds to the anchor.
	SetAnchorDate(ctx context.Context, userID, propertyID string, anchor time.Time) (*domain.CashbookSnapshot, error)

	// SetCustomRange sets explicit bounds and switches to custom-range mode.
	SetCustomRange(ctx context.Context, userID, propertyID string, from, to time.Time) (*domain.CashbookSnapshot, error)

	// SubmitExpense validates and records a manually entered expense, then
	// moves the anchor to the expense date.
	SubmitExpense(ctx context.Context, userID, propertyID string, req dto.SubmitExpenseRequest) (*domain.CashbookSnapshot, error)
}

// CashbookLifecycleSvc defines operations on the session itself
type CashbookLifecycleSvc interface {
	// Close discards the user's session for a property. In-flight refreshes
	// become stale and their results are dropped.
	Close(ctx context.Context, userID, propertyID string) error
}

// CashbookSvcFacade combines all cashbook-related service interfaces
// This is a facade for clients that need access to all operations
type CashbookSvcFacade interface {
	CashbookReaderSvc
	CashbookWriterSvc
	CashbookLifecycleSvc
}
