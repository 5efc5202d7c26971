package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Name     string  `gorm:"size:100;not null;index" json:"name"`
	Address  string  `gorm:"size:255;not null" json:"address"`
	Phone    string  `gorm:"size:30" json:"phone"`
	ImageURL *string `gorm:"size:500" json:"image_url"`
	Hours    *string `gorm:"size:100" json:"hours"`

	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`

	IsOpen       bool    `gorm:"not null" json:"is_open"`
	Rating       float64 `gorm:"not null;default:0" json:"rating"`
	ReviewsCount int     `gorm:"not null;default:0" json:"reviews_count"`

	Services []Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services,omitempty"`
	Reviews  []Review  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews,omitempty"`
	Bookings []Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// HasLocation reports whether both coordinates are set.
func (s *Store) HasLocation() bool {
	return s.Lat != nil && s.Lng != nil
}
