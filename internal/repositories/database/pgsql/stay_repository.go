package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	"github.com/innlodge/lodgebook_app/internal/models"
	"github.com/innlodge/lodgebook_app/internal/utils/mapping"
	"github.com/innlodge/lodgebook_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStayRepository struct {
	BaseRepository
}

// newPgxStayRepository creates a new repository for stay data.
func newPgxStayRepository(pool *pgxpool.Pool) portsrepo.StayRepositoryWithTx {
	return &PgxStayRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStayRepository implements portsrepo.StayRepositoryWithTx
var _ portsrepo.StayRepositoryWithTx = (*PgxStayRepository)(nil)

// SaveStay inserts a stay and moves its room to the given status within a
// single DB transaction.
func (r *PgxStayRepository) SaveStay(ctx context.Context, stay domain.Stay, roomStatus domain.RoomStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	modelStay := mapping.ToModelStay(stay)
	stayQuery := `
		INSERT INTO stays (
			stay_id, property_id, room_id, guest_name, guest_contact,
			checkin_at, checkout_at, total_amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, stayQuery,
		modelStay.StayID,
		modelStay.PropertyID,
		modelStay.RoomID,
		modelStay.GuestName,
		modelStay.GuestContact,
		modelStay.CheckinAt,
		modelStay.CheckoutAt,
		modelStay.TotalAmount,
		modelStay.Status,
		modelStay.CreatedAt,
		modelStay.CreatedBy,
		modelStay.LastUpdatedAt,
		modelStay.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stay "+modelStay.StayID, err)
	}

	if err := r.updateRoomStatusInTx(ctx, tx, stay.RoomID, roomStatus, stay.CreatedBy); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for stay "+modelStay.StayID, err)
	}

	return nil
}

// FinalizeStay updates a stay's terminal state, optionally records a ledger
// entry, and moves its room to the given status within a single DB
// transaction. entry is nil for cancellations.
func (r *PgxStayRepository) FinalizeStay(ctx context.Context, stay domain.Stay, entry *domain.LedgerEntry, roomStatus domain.RoomStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	modelStay := mapping.ToModelStay(stay)
	stayQuery := `
		UPDATE stays
		SET checkout_at = $2,
		    total_amount = $3,
		    status = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE stay_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, stayQuery,
		modelStay.StayID,
		modelStay.CheckoutAt,
		modelStay.TotalAmount,
		modelStay.Status,
		modelStay.LastUpdatedAt,
		modelStay.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stay "+modelStay.StayID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("stay " + modelStay.StayID + " not found for update")
	}

	if entry != nil {
		modelEntry := mapping.ToModelLedgerEntry(*entry)
		entryQuery := `
			INSERT INTO ledger_entries (
				entry_id, property_id, kind, amount, method, note, occurred_at,
				stay_id, room_id, created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, entryQuery,
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
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger entry for stay "+modelStay.StayID, err)
		}
	}

	if err := r.updateRoomStatusInTx(ctx, tx, stay.RoomID, roomStatus, stay.LastUpdatedBy); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for stay "+modelStay.StayID, err)
	}

	return nil
}

// updateRoomStatusInTx flips the room status inside an open transaction so
// stay and room state always change together.
func (r *PgxStayRepository) updateRoomStatusInTx(ctx context.Context, tx pgx.Tx, roomID string, status domain.RoomStatus, updatedByUserID string) error {
	query := `
		UPDATE rooms
		SET status = $2,
		    last_updated_at = NOW(),
		    last_updated_by = $3
		WHERE room_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, roomID, string(status), updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of room "+roomID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("room " + roomID + " not found for status update")
	}
	return nil
}

// FindStayByID retrieves a stay by its ID.
func (r *PgxStayRepository) FindStayByID(ctx context.Context, stayID string) (*domain.Stay, error) {
	query := `
		SELECT stay_id, property_id, room_id, guest_name, guest_contact,
		       checkin_at, checkout_at, total_amount, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM stays
		WHERE stay_id = $1;
	`
	var m models.Stay
	err := r.Pool.QueryRow(ctx, query, stayID).Scan(
		&m.StayID,
		&m.PropertyID,
		&m.RoomID,
		&m.GuestName,
		&m.GuestContact,
		&m.CheckinAt,
		&m.CheckoutAt,
		&m.TotalAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stay by ID %s: %w", stayID, err)
	}

	domainStay := mapping.ToDomainStay(m)
	return &domainStay, nil
}

// ListStaysByProperty retrieves a paginated list of stays for a property using
// token-based pagination, newest check-in first. It returns the stays, a token
// for the next page, and an error.
func (r *PgxStayRepository) ListStaysByProperty(ctx context.Context, propertyID string, limit int, nextToken *string) ([]domain.Stay, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT stay_id, property_id, room_id, guest_name, guest_contact,
		       checkin_at, checkout_at, total_amount, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM stays
		WHERE property_id = $1
	`
	// Ordering is crucial and must be stable
	// We use checkin_at DESC, and created_at DESC as a tie-breaker.
	orderByClause := `ORDER BY checkin_at DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{propertyID}

	if nextToken != nil && *nextToken != "" {
		lastCheckinAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (checkin_at, created_at) < ($2, $3)`
		args = append(args, lastCheckinAt, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		// First page request (no token)
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query stays for property "+propertyID, err)
	}
	defer rows.Close()

	modelStays := make([]models.Stay, 0, fetchLimit)
	for rows.Next() {
		var m models.Stay
		scanErr := rows.Scan(
			&m.StayID,
			&m.PropertyID,
			&m.RoomID,
			&m.GuestName,
			&m.GuestContact,
			&m.CheckinAt,
			&m.CheckoutAt,
			&m.TotalAmount,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan stay row for property "+propertyID, scanErr)
		}
		modelStays = append(modelStays, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating stay rows for property "+propertyID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelStays
	if len(modelStays) > limit {
		// The token points to the last item included in this response page.
		// The next query will start after this item.
		lastStay := modelStays[limit-1]
		newToken := pagination.EncodeToken(lastStay.CheckinAt, lastStay.CreatedAt)
		nextTokenVal = &newToken
		// Trim the extra item fetched
		results = modelStays[:limit]
	}

	return mapping.ToDomainStaySlice(results), nextTokenVal, nil
}
