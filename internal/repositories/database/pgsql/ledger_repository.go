package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	"github.com/innlodge/lodgebook_app/internal/models"
	"github.com/innlodge/lodgebook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveEntry inserts a ledger entry and returns the persisted entry ID.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	modelEntry := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, property_id, kind, amount, method, note, occurred_at,
			stay_id, room_id, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING entry_id;
	`

	var savedID string
	err := r.Pool.QueryRow(ctx, query,
		modelEntry.EntryID,
		modelEntry.PropertyID,
		modelEntry.Kind,
		modelEntry.Amount,
		modelEntry.Method,
		modelEntry.Note,
		modelEntry.OccurredAt,
		modelEntry.StayID,
		modelEntry.RoomID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	).Scan(&savedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The insert ran but handed back no identifier.
			return "", fmt.Errorf("%w: insert returned no entry id", apperrors.ErrCreation)
		}
		return "", fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	if savedID == "" {
		return "", fmt.Errorf("%w: insert returned an empty entry id", apperrors.ErrCreation)
	}

	return savedID, nil
}

// FindEntriesByDateRange retrieves full entry rows inside the window, bounds
// included, newest first.
func (r *PgxLedgerRepository) FindEntriesByDateRange(ctx context.Context, propertyID string, window domain.TimeWindow) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, property_id, kind, amount, method, note, occurred_at,
		       stay_id, room_id, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE property_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, propertyID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for property %s: %w", propertyID, err)
	}
	defer rows.Close()

	modelEntries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.PropertyID,
			&m.Kind,
			&m.Amount,
			&m.Method,
			&m.Note,
			&m.OccurredAt,
			&m.StayID,
			&m.RoomID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// FindAggregateInputsByDateRange retrieves the kind and amount projection of
// the entries inside the window, bounds included. Totals are computed from
// this projection without loading full rows.
func (r *PgxLedgerRepository) FindAggregateInputsByDateRange(ctx context.Context, propertyID string, window domain.TimeWindow) ([]domain.AggregateInput, error) {
	query := `
		SELECT kind, amount
		FROM ledger_entries
		WHERE property_id = $1 AND occurred_at >= $2 AND occurred_at <= $3;
	`
	rows, err := r.Pool.Query(ctx, query, propertyID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregate inputs for property %s: %w", propertyID, err)
	}
	defer rows.Close()

	inputs := []domain.AggregateInput{}
	for rows.Next() {
		var kind string
		var input domain.AggregateInput
		if err := rows.Scan(&kind, &input.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate input row: %w", err)
		}
		input.Kind = domain.EntryKind(kind)
		inputs = append(inputs, input)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate input rows: %w", err)
	}

	return inputs, nil
}
