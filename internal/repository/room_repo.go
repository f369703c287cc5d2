package repository

import (
	"errors"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetAllRooms retrieves all active rooms
func (r *RoomRepository) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Where("is_active = ?", true).
		Order("code ASC").
		Find(&rooms).Error
	return rooms, err
}

// GetRoomByID retrieves an active room by ID
func (r *RoomRepository) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// GetRoomByCode retrieves an active room by its unique code
func (r *RoomRepository) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CreateRoom creates a new room
func (r *RoomRepository) CreateRoom(room *models.Room) error {
	return r.db.Create(room).Error
}

// UpdateRoom persists the editable columns only. The status column is
// owned by derivation and is_active by soft delete.
func (r *RoomRepository) UpdateRoom(room *models.Room) error {
	return r.db.Model(&models.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]interface{}{
			"code":        room.Code,
			"name":        room.Name,
			"capacity":    room.Capacity,
			"facilities":  room.Facilities,
			"images":      room.Images,
			"description": room.Description,
		}).Error
}

// UpdateRoomStatus persists only the derived status column
func (r *RoomRepository) UpdateRoomStatus(id uint, status string) error {
	return r.db.Model(&models.Room{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SoftDeleteRoom soft deletes a room by setting is_active to false
func (r *RoomRepository) SoftDeleteRoom(id uint) error {
	return r.db.Model(&models.Room{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
