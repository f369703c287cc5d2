package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"
)

func TestClearMaintenanceOnIdleRoomPersists(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.rooms.SetMaintenance(env.room.ID, true, env.admin.ID)
	require.NoError(t, err)
	stored, err := env.roomRepo.GetRoomByID(env.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "maintenance", stored.Status)

	// With no borrowing to derive from, clearing the flag must still
	// write "available" through to the row.
	room, err := env.rooms.SetMaintenance(env.room.ID, false, env.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "available", room.Status)

	stored, err = env.roomRepo.GetRoomByID(env.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "available", stored.Status)
}

func TestUpdateRoomPreservesLifecycleColumns(t *testing.T) {
	env := newTestEnv(t)
	env.createPending(t)

	// A rename request carries only the editable fields; the zero
	// values for is_active and status must not be written.
	err := env.rooms.UpdateRoom(&models.Room{
		ID:       env.room.ID,
		Code:     env.room.Code,
		Name:     "Renamed Seminar Room",
		Capacity: 25,
	}, env.admin.ID)
	require.NoError(t, err)

	stored, err := env.roomRepo.GetRoomByID(env.room.ID)
	require.NoError(t, err, "room must still be active after a plain update")
	assert.Equal(t, "Renamed Seminar Room", stored.Name)
	assert.Equal(t, 25, stored.Capacity)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "available", stored.Status)

	// The delete guard still applies because the row was never
	// silently soft deleted.
	err = env.rooms.DeleteRoom(env.room.ID, env.admin.ID)
	assert.ErrorIs(t, err, lifecycle.ErrRoomInUse)
}

func TestUpdateRoomRejectsDuplicateCode(t *testing.T) {
	env := newTestEnv(t)

	other := models.Room{Code: "R-102", Name: "Lab", Capacity: 10, Status: "available", IsActive: true}
	require.NoError(t, env.db.Create(&other).Error)

	err := env.rooms.UpdateRoom(&models.Room{
		ID:       other.ID,
		Code:     env.room.Code,
		Name:     other.Name,
		Capacity: other.Capacity,
	}, env.admin.ID)
	assert.Error(t, err)
}
