package service

import (
	"errors"
	"fmt"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"
	"room-booking-backend/internal/repository"
)

type RoomService struct {
	roomRepo      *repository.RoomRepository
	borrowingRepo *repository.BorrowingRepository
	auditRepo     *repository.AuditRepository
}

func NewRoomService(
	roomRepo *repository.RoomRepository,
	borrowingRepo *repository.BorrowingRepository,
	auditRepo *repository.AuditRepository,
) *RoomService {
	return &RoomService{
		roomRepo:      roomRepo,
		borrowingRepo: borrowingRepo,
		auditRepo:     auditRepo,
	}
}

// GetAllRooms retrieves all active rooms
func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	return s.roomRepo.GetAllRooms()
}

// GetRoomByID retrieves a room by ID
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	return s.roomRepo.GetRoomByID(id)
}

// CreateRoom creates a new room (admin only)
func (s *RoomService) CreateRoom(room *models.Room, userID uint) error {
	if existing, err := s.roomRepo.GetRoomByCode(room.Code); err == nil && existing != nil {
		return fmt.Errorf("room code %q already in use", room.Code)
	}

	if room.Status == "" {
		room.Status = string(lifecycle.RoomAvailable)
	}
	if _, err := lifecycle.ParseRoomStatus(room.Status); err != nil {
		return err
	}

	if err := s.roomRepo.CreateRoom(room); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Created room: %s (code: %s, capacity: %d)", room.Name, room.Code, room.Capacity)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_create", details)

	return nil
}

// UpdateRoom updates an existing room (admin only)
func (s *RoomService) UpdateRoom(room *models.Room, userID uint) error {
	existing, err := s.roomRepo.GetRoomByID(room.ID)
	if err != nil {
		return err
	}

	if room.Code != existing.Code {
		if other, err := s.roomRepo.GetRoomByCode(room.Code); err == nil && other != nil {
			return fmt.Errorf("room code %q already in use", room.Code)
		}
	}

	// The status column is derived and is_active is owned by soft
	// delete; direct edits go through the maintenance and delete
	// endpoints instead.
	room.Status = existing.Status
	room.IsActive = existing.IsActive
	room.CreatedAt = existing.CreatedAt

	if err := s.roomRepo.UpdateRoom(room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Updated room: %s (ID: %d, code: %s)", room.Name, room.ID, room.Code)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_update", details)

	return nil
}

// DeleteRoom soft deletes a room (admin only). Rooms still referenced by
// a pending, approved or active borrowing cannot be deleted.
func (s *RoomService) DeleteRoom(roomID uint, userID uint) error {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return err
	}

	inUse, err := s.borrowingRepo.HasNonTerminalForRoom(roomID)
	if err != nil {
		return fmt.Errorf("failed to check room borrowings: %w", err)
	}
	if inUse {
		return lifecycle.ErrRoomInUse
	}

	if err := s.roomRepo.SoftDeleteRoom(roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Deleted room: %s (code: %s, ID: %d)", room.Name, room.Code, roomID)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_delete", details)

	return nil
}

// SetMaintenance flips the operator-set maintenance flag. Clearing it
// hands the status back to derivation from the current borrowing.
func (s *RoomService) SetMaintenance(roomID uint, underMaintenance bool, userID uint) (*models.Room, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}

	if underMaintenance {
		room.Status = string(lifecycle.RoomMaintenance)
		if err := s.roomRepo.UpdateRoomStatus(roomID, room.Status); err != nil {
			return nil, fmt.Errorf("failed to set maintenance: %w", err)
		}
	} else {
		// Persist the cleared flag first; derivation treats a stored
		// maintenance status as operator-set and would keep it.
		room.Status = string(lifecycle.RoomAvailable)
		if err := s.roomRepo.UpdateRoomStatus(roomID, room.Status); err != nil {
			return nil, fmt.Errorf("failed to clear maintenance: %w", err)
		}
		if err := refreshRoomStatus(s.roomRepo, s.borrowingRepo, room); err != nil {
			return nil, err
		}
	}

	userIDPtr := &userID
	details := fmt.Sprintf("Room %s maintenance set to %t", room.Code, underMaintenance)
	_ = s.auditRepo.CreateAuditLog(userIDPtr, "room_maintenance", details)

	return room, nil
}

// refreshRoomStatus re-derives a room's status from its current
// borrowing and persists it if changed. Shared by the borrowing
// service, the room service and the sweep so all writers agree.
func refreshRoomStatus(roomRepo *repository.RoomRepository, borrowingRepo *repository.BorrowingRepository, room *models.Room) error {
	current, err := borrowingRepo.GetCurrentForRoom(room.ID)
	if err != nil {
		return fmt.Errorf("failed to find current borrowing for room %d: %w", room.ID, err)
	}

	derived := lifecycle.DeriveRoomStatus(room, current)
	if string(derived) == room.Status {
		return nil
	}

	if err := roomRepo.UpdateRoomStatus(room.ID, string(derived)); err != nil {
		return fmt.Errorf("failed to persist status for room %d: %w", room.ID, err)
	}
	room.Status = string(derived)
	return nil
}

// refreshRoomStatusByID is refreshRoomStatus for callers that only hold
// the room ID. A missing room is not an error; it may have been soft
// deleted since the borrowing was created.
func refreshRoomStatusByID(roomRepo *repository.RoomRepository, borrowingRepo *repository.BorrowingRepository, roomID uint) error {
	room, err := roomRepo.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, lifecycle.ErrRoomNotFound) {
			return nil
		}
		return err
	}
	return refreshRoomStatus(roomRepo, borrowingRepo, room)
}
