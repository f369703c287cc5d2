package lifecycle

import (
	"fmt"
	"time"

	"room-booking-backend/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DeriveTimestamps combines the borrowing's date and time-of-day source
// fields into the borrowed-at and planned-return-at instants. It is
// idempotent: identical inputs always yield identical outputs. The
// planned return must be strictly after the start.
func DeriveTimestamps(borrowDate, startTime, returnDate, endTime string) (time.Time, time.Time, error) {
	borrowedAt, err := combine(borrowDate, startTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid borrow date/time: %w", err)
	}

	plannedReturnAt, err := combine(returnDate, endTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid return date/time: %w", err)
	}

	if !plannedReturnAt.After(borrowedAt) {
		return time.Time{}, time.Time{}, fmt.Errorf("planned return %s is not after start %s",
			plannedReturnAt.Format(time.RFC3339), borrowedAt.Format(time.RFC3339))
	}

	return borrowedAt, plannedReturnAt, nil
}

func combine(date, clock string) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, time.Local)
}

// DeriveRoomStatus computes the room's displayed status from its current
// borrowing. A maintenance flag set by an operator is never overwritten.
// Only an ACTIVE borrowing occupies the room; an APPROVED reservation
// that has not started leaves it available.
func DeriveRoomStatus(room *models.Room, current *models.Borrowing) RoomStatus {
	if room.Status == string(RoomMaintenance) {
		return RoomMaintenance
	}
	if current != nil && current.Status == string(StatusActive) {
		return RoomOccupied
	}
	return RoomAvailable
}

// IsOverdue reports whether the borrowing is in use past its planned
// return. Terminal borrowings are never overdue.
func IsOverdue(b *models.Borrowing, now time.Time) bool {
	return b.Status == string(StatusActive) && now.After(b.PlannedReturnAt)
}

// StartDue reports whether an approved borrowing's start time has
// arrived. The sweep only auto-starts once this guard holds; an explicit
// admin start is not time-guarded.
func StartDue(b *models.Borrowing, now time.Time) bool {
	return b.Status == string(StatusApproved) && !now.Before(b.BorrowedAt)
}
