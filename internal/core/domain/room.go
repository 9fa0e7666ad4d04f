package domain

// RoomStatus tracks where a room is in the stay cycle.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// roomTransitions lists the permitted status changes. Check-in takes an
// available room to occupied; checkout leaves it in cleaning until staff
// mark it available again; maintenance is only entered from available.
var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomAvailable:   {RoomOccupied, RoomMaintenance},
	RoomOccupied:    {RoomCleaning},
	RoomCleaning:    {RoomAvailable},
	RoomMaintenance: {RoomAvailable},
}

// CanTransitionTo reports whether moving from s to target is permitted.
func (s RoomStatus) CanTransitionTo(target RoomStatus) bool {
	for _, allowed := range roomTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Room represents a single lettable room of a property.
type Room struct {
	RoomID     string     `json:"roomID"`     // Primary Key (e.g., UUID)
	PropertyID string     `json:"propertyID"` // FK -> properties.property_id (Not Null)
	Name       string     `json:"name"`       // Display name, e.g. "101" or "Garden Suite"
	Status     RoomStatus `json:"status"`
	AuditFields
}
