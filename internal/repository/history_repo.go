package repository

import (
	"room-booking-backend/internal/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction, so a
// history row commits atomically with the transition that produced it.
func (r *HistoryRepository) WithTx(tx *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: tx}
}

// Record appends one audit row for a borrowing transition. A write
// failure must fail the enclosing transition; the trail is the only
// durable record of why a status changed.
func (r *HistoryRepository) Record(borrowingID uint, action string, oldStatus, newStatus *string, comment string, actorID *uint) error {
	row := &models.BorrowingHistory{
		BorrowingID: borrowingID,
		Action:      action,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		Comment:     comment,
		ActorID:     actorID,
	}
	return r.db.Create(row).Error
}

// GetByBorrowingID returns the full trail for a borrowing, oldest first
func (r *HistoryRepository) GetByBorrowingID(borrowingID uint) ([]models.BorrowingHistory, error) {
	var rows []models.BorrowingHistory
	err := r.db.Where("borrowing_id = ?", borrowingID).
		Preload("Actor").
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
