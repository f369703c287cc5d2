package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-booking-backend/internal/models"
)

func TestDeriveTimestamps(t *testing.T) {
	borrowedAt, plannedReturnAt, err := DeriveTimestamps("2024-06-01", "09:00", "2024-06-01", "11:00")
	require.NoError(t, err)

	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	assert.Equal(t, want, borrowedAt)
	assert.Equal(t, time.Date(2024, 6, 1, 11, 0, 0, 0, time.Local), plannedReturnAt)

	// Idempotent: same inputs, same outputs.
	again, againReturn, err := DeriveTimestamps("2024-06-01", "09:00", "2024-06-01", "11:00")
	require.NoError(t, err)
	assert.Equal(t, borrowedAt, again)
	assert.Equal(t, plannedReturnAt, againReturn)
}

func TestDeriveTimestampsOvernight(t *testing.T) {
	borrowedAt, plannedReturnAt, err := DeriveTimestamps("2024-06-01", "22:00", "2024-06-02", "02:00")
	require.NoError(t, err)
	assert.True(t, plannedReturnAt.After(borrowedAt))
	assert.Equal(t, 4*time.Hour, plannedReturnAt.Sub(borrowedAt))
}

func TestDeriveTimestampsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name                                       string
		borrowDate, startTime, returnDate, endTime string
	}{
		{"malformed date", "01-06-2024", "09:00", "2024-06-01", "11:00"},
		{"malformed time", "2024-06-01", "9am", "2024-06-01", "11:00"},
		{"return before start", "2024-06-01", "11:00", "2024-06-01", "09:00"},
		{"return equals start", "2024-06-01", "09:00", "2024-06-01", "09:00"},
		{"empty", "", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DeriveTimestamps(tc.borrowDate, tc.startTime, tc.returnDate, tc.endTime)
			assert.Error(t, err)
		})
	}
}

func TestDeriveRoomStatus(t *testing.T) {
	room := &models.Room{Status: string(RoomAvailable)}

	assert.Equal(t, RoomAvailable, DeriveRoomStatus(room, nil))

	approved := &models.Borrowing{Status: string(StatusApproved)}
	assert.Equal(t, RoomAvailable, DeriveRoomStatus(room, approved),
		"an approved reservation that has not started does not occupy the room")

	active := &models.Borrowing{Status: string(StatusActive)}
	assert.Equal(t, RoomOccupied, DeriveRoomStatus(room, active))
}

func TestDeriveRoomStatusMaintenanceWins(t *testing.T) {
	room := &models.Room{Status: string(RoomMaintenance)}
	active := &models.Borrowing{Status: string(StatusActive)}

	assert.Equal(t, RoomMaintenance, DeriveRoomStatus(room, nil))
	assert.Equal(t, RoomMaintenance, DeriveRoomStatus(room, active))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	active := &models.Borrowing{Status: string(StatusActive), PlannedReturnAt: past}
	assert.True(t, IsOverdue(active, now))

	active.PlannedReturnAt = future
	assert.False(t, IsOverdue(active, now))

	completed := &models.Borrowing{Status: string(StatusCompleted), PlannedReturnAt: past}
	assert.False(t, IsOverdue(completed, now), "terminal borrowings are never overdue")
}

func TestStartDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	approved := &models.Borrowing{Status: string(StatusApproved), BorrowedAt: now}
	assert.True(t, StartDue(approved, now), "start is due at the exact start instant")

	approved.BorrowedAt = now.Add(time.Minute)
	assert.False(t, StartDue(approved, now))

	pending := &models.Borrowing{Status: string(StatusPending), BorrowedAt: now.Add(-time.Hour)}
	assert.False(t, StartDue(pending, now))
}
