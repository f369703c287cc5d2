package models

import "time"

// Borrowing represents a single room reservation and its lifecycle status.
// BorrowDate/StartTime/ReturnDate/EndTime are the source fields entered by the
// borrower; BorrowedAt and PlannedReturnAt are derived from them on every write.
type Borrowing struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	RoomID uint `gorm:"not null;index" json:"room_id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	BorrowerName     string `gorm:"size:100;not null" json:"borrower_name"`
	BorrowerPhone    string `gorm:"size:30" json:"borrower_phone,omitempty"`
	BorrowerCategory string `gorm:"size:50" json:"borrower_category,omitempty"`
	Purpose          string `gorm:"type:text" json:"purpose,omitempty"`

	BorrowDate string `gorm:"size:10;not null" json:"borrow_date"`
	StartTime  string `gorm:"size:5;not null" json:"start_time"`
	ReturnDate string `gorm:"size:10;not null" json:"return_date"`
	EndTime    string `gorm:"size:5;not null" json:"end_time"`

	BorrowedAt       time.Time  `json:"borrowed_at"`
	PlannedReturnAt  time.Time  `json:"planned_return_at"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`

	Status          string     `gorm:"size:20;default:'pending';index" json:"status"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	CancelReason    string     `gorm:"type:text" json:"cancel_reason,omitempty"`

	// Version is bumped on every status change; used for optimistic locking
	// so the sweep and user-triggered transitions cannot silently race.
	Version int `gorm:"default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Room Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Borrowing model
func (Borrowing) TableName() string {
	return "borrowings"
}
