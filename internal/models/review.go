package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID string `gorm:"type:uuid;not null;index:idx_reviews_store_date,priority:1" json:"store_id"`

	Author  string    `gorm:"size:100;not null" json:"author"`
	Rating  float64   `gorm:"not null" json:"rating"`
	Comment string    `gorm:"type:text" json:"comment"`
	Date    time.Time `gorm:"not null;index:idx_reviews_store_date,priority:2" json:"date"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	return nil
}
