package domain

import "time"

// Property represents one lodging business unit (an inn, guesthouse or
// homestay). Rooms, stays and ledger entries all hang off a property.
type Property struct {
	PropertyID  string `json:"propertyID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`       // User-defined name
	Address     string `json:"address"`    // Nullable free text
	OwnerUserID string `json:"ownerUserID"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
