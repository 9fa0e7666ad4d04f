package models

import (
	"database/sql"
	"time"
)

// Property is the database representation of a lodging business unit.
type Property struct {
	PropertyID  string         `db:"property_id"`
	Name        string         `db:"name"`
	Address     sql.NullString `db:"address"`
	OwnerUserID string         `db:"owner_user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
