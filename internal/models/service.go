package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is an offering listed under a store. Slug is unique per store.
type Service struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID string `gorm:"type:uuid;not null;uniqueIndex:idx_services_store_slug,priority:1" json:"store_id"`

	Name   string  `gorm:"size:100;not null" json:"name"`
	Slug   string  `gorm:"size:120;not null;uniqueIndex:idx_services_store_slug,priority:2" json:"slug"`
	Detail *string `gorm:"type:text" json:"detail"`

	PriceFrom decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"price_from"`
	PriceTo   decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"price_to"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
