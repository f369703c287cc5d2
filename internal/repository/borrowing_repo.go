package repository

import (
	"errors"
	"time"

	"room-booking-backend/internal/lifecycle"
	"room-booking-backend/internal/models"

	"gorm.io/gorm"
)

// nonTerminalStatuses are the statuses that still block a room from
// being deleted and qualify a borrowing as the room's current one.
var nonTerminalStatuses = []string{
	string(lifecycle.StatusPending),
	string(lifecycle.StatusApproved),
	string(lifecycle.StatusActive),
}

type BorrowingRepository struct {
	db *gorm.DB
}

func NewBorrowingRepo(db *gorm.DB) *BorrowingRepository {
	return &BorrowingRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *BorrowingRepository) WithTx(tx *gorm.DB) *BorrowingRepository {
	return &BorrowingRepository{db: tx}
}

// CreateBorrowing creates a new borrowing
func (r *BorrowingRepository) CreateBorrowing(b *models.Borrowing) error {
	return r.db.Create(b).Error
}

// GetBorrowingByID retrieves a borrowing with its room and user preloaded
func (r *BorrowingRepository) GetBorrowingByID(id uint) (*models.Borrowing, error) {
	var b models.Borrowing
	err := r.db.Preload("Room").Preload("User").First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lifecycle.ErrBorrowingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetAllBorrowings retrieves all borrowings, newest first
func (r *BorrowingRepository) GetAllBorrowings() ([]models.Borrowing, error) {
	var borrowings []models.Borrowing
	err := r.db.Preload("Room").
		Order("created_at DESC").
		Find(&borrowings).Error
	return borrowings, err
}

// GetBorrowingsByUserID retrieves one user's borrowings, newest first
func (r *BorrowingRepository) GetBorrowingsByUserID(userID uint) ([]models.Borrowing, error) {
	var borrowings []models.Borrowing
	err := r.db.Where("user_id = ?", userID).
		Preload("Room").
		Order("created_at DESC").
		Find(&borrowings).Error
	return borrowings, err
}

// GetCurrentForRoom returns the borrowing that currently determines the
// room's status: an active one if present, otherwise the next approved
// one, otherwise nil.
func (r *BorrowingRepository) GetCurrentForRoom(roomID uint) (*models.Borrowing, error) {
	var b models.Borrowing
	err := r.db.Where("room_id = ? AND status = ?", roomID, string(lifecycle.StatusActive)).
		Order("borrowed_at ASC").
		First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.Where("room_id = ? AND status = ?", roomID, string(lifecycle.StatusApproved)).
		Order("borrowed_at ASC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetDueToStart returns approved borrowings whose start time has arrived
func (r *BorrowingRepository) GetDueToStart(now time.Time) ([]models.Borrowing, error) {
	var borrowings []models.Borrowing
	err := r.db.Where("status = ? AND borrowed_at <= ?", string(lifecycle.StatusApproved), now).
		Find(&borrowings).Error
	return borrowings, err
}

// HasNonTerminalForRoom reports whether any pending, approved or active
// borrowing still references the room.
func (r *BorrowingRepository) HasNonTerminalForRoom(roomID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Borrowing{}).
		Where("room_id = ? AND status IN ?", roomID, nonTerminalStatuses).
		Count(&count).Error
	return count > 0, err
}

// UpdateTransition persists a status transition with an optimistic
// version check. fromVersion must be the version the transition was
// computed against; if another writer got there first the update
// matches no row and ErrConcurrentModification is returned.
func (r *BorrowingRepository) UpdateTransition(b *models.Borrowing, fromVersion int) error {
	res := r.db.Model(&models.Borrowing{}).
		Where("id = ? AND version = ?", b.ID, fromVersion).
		Updates(map[string]interface{}{
			"status":             b.Status,
			"approved_by":        b.ApprovedBy,
			"approved_at":        b.ApprovedAt,
			"rejection_reason":   b.RejectionReason,
			"cancel_reason":      b.CancelReason,
			"actual_return_date": b.ActualReturnDate,
			"version":            fromVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lifecycle.ErrConcurrentModification
	}
	b.Version = fromVersion + 1
	return nil
}
