package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	StoreID   string   `gorm:"type:uuid;not null;index:idx_bookings_store_date,priority:1" json:"store_id"`
	ServiceID string   `gorm:"type:uuid;not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`

	CustomerName string  `gorm:"size:100;not null" json:"customer_name"`
	Phone        string  `gorm:"size:30;not null" json:"phone"`
	Email        *string `gorm:"size:191" json:"email"`

	CarModel string `gorm:"size:100;not null" json:"car_model"`
	CarPlate string `gorm:"size:30;not null" json:"car_plate"`

	Date   time.Time `gorm:"not null;index:idx_bookings_store_date,priority:2" json:"date"`
	Note   *string   `gorm:"type:text" json:"note"`
	Status string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`

	Payment *Payment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
