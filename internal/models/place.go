package models

import (
	"time"

	"gorm.io/gorm"
)

// Place represents a user-submitted point of interest.
//
// Image holds a relative path into the local file store; handlers resolve it
// to a public URL at serialization time via ImageURL.
type Place struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	User        User    `gorm:"foreignKey:UserID" json:"user"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Address     string  `gorm:"size:255" json:"address"`
	Image       string  `json:"-"`
	Latitude    float64 `gorm:"not null" json:"latitude"`
	Longitude   float64 `gorm:"not null" json:"longitude"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	ImageURL      *string        `gorm:"-" json:"image"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:PlaceID" json:"comments,omitempty"`
}
