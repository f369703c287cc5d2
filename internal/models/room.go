package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room represents a bookable space (meeting room, hall, lab)
type Room struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Capacity    int            `gorm:"not null" json:"capacity"`
	Status      string         `gorm:"size:20;default:'available'" json:"status"`
	Facilities  datatypes.JSON `json:"facilities,omitempty"`
	Images      datatypes.JSON `json:"images,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}
