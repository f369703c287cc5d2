package lifecycle

// BorrowingStatus is the closed set of borrowing lifecycle states.
type BorrowingStatus string

const (
	StatusPending   BorrowingStatus = "pending"
	StatusApproved  BorrowingStatus = "approved"
	StatusRejected  BorrowingStatus = "rejected"
	StatusActive    BorrowingStatus = "active"
	StatusCompleted BorrowingStatus = "completed"
	StatusCancelled BorrowingStatus = "cancelled"
)

// RoomStatus is the closed set of room display states.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// statusMeta holds display metadata for a status value.
type statusMeta struct {
	Label string
	Color string
}

var borrowingStatusMeta = map[BorrowingStatus]statusMeta{
	StatusPending:   {Label: "Pending Approval", Color: "yellow"},
	StatusApproved:  {Label: "Approved", Color: "blue"},
	StatusRejected:  {Label: "Rejected", Color: "red"},
	StatusActive:    {Label: "In Use", Color: "green"},
	StatusCompleted: {Label: "Completed", Color: "gray"},
	StatusCancelled: {Label: "Cancelled", Color: "gray"},
}

var roomStatusMeta = map[RoomStatus]statusMeta{
	RoomAvailable:   {Label: "Available", Color: "green"},
	RoomOccupied:    {Label: "Occupied", Color: "red"},
	RoomMaintenance: {Label: "Under Maintenance", Color: "orange"},
}

// Label returns the human-readable label for the status.
func (s BorrowingStatus) Label() string {
	return borrowingStatusMeta[s].Label
}

// Color returns the display color tag for the status.
func (s BorrowingStatus) Color() string {
	return borrowingStatusMeta[s].Color
}

// IsTerminal reports whether no further transition is permitted.
func (s BorrowingStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the human-readable label for the room status.
func (s RoomStatus) Label() string {
	return roomStatusMeta[s].Label
}

// Color returns the display color tag for the room status.
func (s RoomStatus) Color() string {
	return roomStatusMeta[s].Color
}

// ParseBorrowingStatus normalizes a stored status string to the canonical
// enum value. Unknown keys fail instead of defaulting silently.
func ParseBorrowingStatus(key string) (BorrowingStatus, error) {
	s := BorrowingStatus(key)
	if _, ok := borrowingStatusMeta[s]; !ok {
		return "", &InvalidStatusError{Value: key}
	}
	return s, nil
}

// ParseRoomStatus normalizes a stored room status string to the canonical
// enum value.
func ParseRoomStatus(key string) (RoomStatus, error) {
	s := RoomStatus(key)
	if _, ok := roomStatusMeta[s]; !ok {
		return "", &InvalidStatusError{Value: key}
	}
	return s, nil
}
