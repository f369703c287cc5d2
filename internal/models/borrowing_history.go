package models

import "time"

// BorrowingHistory is the append-only audit trail of a borrowing.
// One row is written per lifecycle transition; rows are never updated
// or deleted. ActorID is nil for sweep-performed transitions.
type BorrowingHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BorrowingID uint      `gorm:"not null;index" json:"borrowing_id"`
	Action      string    `gorm:"size:30;not null" json:"action"`
	OldStatus   *string   `gorm:"size:20" json:"old_status"`
	NewStatus   *string   `gorm:"size:20" json:"new_status"`
	Comment     string    `gorm:"type:text" json:"comment,omitempty"`
	ActorID     *uint     `gorm:"index" json:"actor_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table name for BorrowingHistory model
func (BorrowingHistory) TableName() string {
	return "borrowing_histories"
}
