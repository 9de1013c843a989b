package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a user remark attached to a place.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PlaceID   uint           `gorm:"not null;index" json:"place_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Text      string         `gorm:"size:1000;not null" json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
