package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	"github.com/innlodge/lodgebook_app/internal/models"
	"github.com/innlodge/lodgebook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPropertyRepository struct {
	db *pgxpool.Pool
}

func newPgxPropertyRepository(db *pgxpool.Pool) portsrepo.PropertyRepositoryFacade {
	return &PgxPropertyRepository{db: db}
}

// Ensure PgxPropertyRepository implements portsrepo.PropertyRepositoryFacade
var _ portsrepo.PropertyRepositoryFacade = (*PgxPropertyRepository)(nil)

func (r *PgxPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) error {
	modelProperty := mapping.ToModelProperty(property)
	query := `
        INSERT INTO properties (property_id, name, address, owner_user_id, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelProperty.PropertyID,
		modelProperty.Name,
		modelProperty.Address,
		modelProperty.OwnerUserID,
		modelProperty.CreatedAt,
		modelProperty.CreatedBy,
		modelProperty.LastUpdatedAt,
		modelProperty.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

func (r *PgxPropertyRepository) FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	query := `
		SELECT property_id, name, address, owner_user_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM properties
		WHERE property_id = $1 AND deleted_at IS NULL;
	`
	var modelProperty models.Property
	err := r.db.QueryRow(ctx, query, propertyID).Scan(
		&modelProperty.PropertyID,
		&modelProperty.Name,
		&modelProperty.Address,
		&modelProperty.OwnerUserID,
		&modelProperty.CreatedAt,
		&modelProperty.CreatedBy,
		&modelProperty.LastUpdatedAt,
		&modelProperty.LastUpdatedBy,
		&modelProperty.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find property by ID %s: %w", propertyID, err)
	}

	domainProperty := mapping.ToDomainProperty(modelProperty)
	return &domainProperty, nil
}

func (r *PgxPropertyRepository) ListPropertiesByOwner(ctx context.Context, ownerUserID string) ([]domain.Property, error) {
	query := `
        SELECT property_id, name, address, owner_user_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at
        FROM properties
        WHERE owner_user_id = $1 AND deleted_at IS NULL
        ORDER BY created_at;
    `
	rows, err := r.db.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for owner %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	modelProperties := []models.Property{}
	for rows.Next() {
		var modelProperty models.Property
		err := rows.Scan(
			&modelProperty.PropertyID,
			&modelProperty.Name,
			&modelProperty.Address,
			&modelProperty.OwnerUserID,
			&modelProperty.CreatedAt,
			&modelProperty.CreatedBy,
			&modelProperty.LastUpdatedAt,
			&modelProperty.LastUpdatedBy,
			&modelProperty.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		modelProperties = append(modelProperties, modelProperty)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", rows.Err())
	}

	return mapping.ToDomainPropertySlice(modelProperties), nil
}

func (r *PgxPropertyRepository) UpdateProperty(ctx context.Context, property domain.Property) error {
	modelProperty := mapping.ToModelProperty(property)
	query := `
        UPDATE properties
        SET name = $1, address = $2, last_updated_at = $3, last_updated_by = $4
        WHERE property_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelProperty.Name,
		modelProperty.Address,
		modelProperty.LastUpdatedAt,
		modelProperty.LastUpdatedBy,
		modelProperty.PropertyID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update property query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("property not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPropertyRepository) MarkPropertyDeleted(ctx context.Context, propertyID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE properties
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE property_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, propertyID)
	if err != nil {
		return fmt.Errorf("failed to mark property as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("property not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
