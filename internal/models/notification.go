package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an in-app alert produced by borrowing lifecycle events.
// Delivery beyond this table (email, push) is out of scope.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Type      string         `gorm:"size:50;not null" json:"type"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Data      datatypes.JSON `json:"data,omitempty"`
	Read      bool           `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
