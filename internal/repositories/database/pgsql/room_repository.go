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

type PgxRoomRepository struct {
	db *pgxpool.Pool
}

func newPgxRoomRepository(db *pgxpool.Pool) portsrepo.RoomRepositoryFacade {
	return &PgxRoomRepository{db: db}
}

// Ensure PgxRoomRepository implements portsrepo.RoomRepositoryFacade
var _ portsrepo.RoomRepositoryFacade = (*PgxRoomRepository)(nil)

func (r *PgxRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	modelRoom := mapping.ToModelRoom(room)
	query := `
        INSERT INTO rooms (room_id, property_id, name, status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelRoom.RoomID,
		modelRoom.PropertyID,
		modelRoom.Name,
		modelRoom.Status,
		modelRoom.CreatedAt,
		modelRoom.CreatedBy,
		modelRoom.LastUpdatedAt,
		modelRoom.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

func (r *PgxRoomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	query := `
		SELECT room_id, property_id, name, status, created_at, created_by, last_updated_at, last_updated_by
		FROM rooms
		WHERE room_id = $1;
	`
	var modelRoom models.Room
	err := r.db.QueryRow(ctx, query, roomID).Scan(
		&modelRoom.RoomID,
		&modelRoom.PropertyID,
		&modelRoom.Name,
		&modelRoom.Status,
		&modelRoom.CreatedAt,
		&modelRoom.CreatedBy,
		&modelRoom.LastUpdatedAt,
		&modelRoom.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room by ID %s: %w", roomID, err)
	}

	domainRoom := mapping.ToDomainRoom(modelRoom)
	return &domainRoom, nil
}

func (r *PgxRoomRepository) ListRoomsByProperty(ctx context.Context, propertyID string) ([]domain.Room, error) {
	query := `
        SELECT room_id, property_id, name, status, created_at, created_by, last_updated_at, last_updated_by
        FROM rooms
        WHERE property_id = $1
        ORDER BY name;
    `
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms for property %s: %w", propertyID, err)
	}
	defer rows.Close()

	modelRooms := []models.Room{}
	for rows.Next() {
		var modelRoom models.Room
		err := rows.Scan(
			&modelRoom.RoomID,
			&modelRoom.PropertyID,
			&modelRoom.Name,
			&modelRoom.Status,
			&modelRoom.CreatedAt,
			&modelRoom.CreatedBy,
			&modelRoom.LastUpdatedAt,
			&modelRoom.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		modelRooms = append(modelRooms, modelRoom)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", rows.Err())
	}

	return mapping.ToDomainRoomSlice(modelRooms), nil
}

// FindRoomNamesByIDs resolves room IDs to display names. IDs that do not
// resolve are simply absent from the result map.
func (r *PgxRoomRepository) FindRoomNamesByIDs(ctx context.Context, roomIDs []string) (map[string]string, error) {
	if len(roomIDs) == 0 {
		return map[string]string{}, nil
	}

	query := `
		SELECT room_id, name
		FROM rooms
		WHERE room_id = ANY($1);
	`
	rows, err := r.db.Query(ctx, query, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query room names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(roomIDs))
	for rows.Next() {
		var roomID, name string
		if err := rows.Scan(&roomID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan room name row: %w", err)
		}
		names[roomID] = name
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating room name rows: %w", rows.Err())
	}

	return names, nil
}

func (r *PgxRoomRepository) UpdateRoom(ctx context.Context, room domain.Room) error {
	modelRoom := mapping.ToModelRoom(room)
	query := `
        UPDATE rooms
        SET name = $1, last_updated_at = $2, last_updated_by = $3
        WHERE room_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelRoom.Name,
		modelRoom.LastUpdatedAt,
		modelRoom.LastUpdatedBy,
		modelRoom.RoomID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update room query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("room not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRoomRepository) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, updatedByUserID string) error {
	query := `
        UPDATE rooms
        SET status = $1, last_updated_at = NOW(), last_updated_by = $2
        WHERE room_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), updatedByUserID, roomID)
	if err != nil {
		return fmt.Errorf("failed to update status of room %s: %w", roomID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("room not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
