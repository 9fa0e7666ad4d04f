package models

// Room is the database representation of a lettable room.
type Room struct {
	RoomID     string `db:"room_id"`
	PropertyID string `db:"property_id"`
	Name       string `db:"name"`
	Status     string `db:"status"`
	AuditFields
}
