package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`

	Method string          `gorm:"size:20;not null" json:"method"`
	Amount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaidAt *time.Time      `json:"paid_at"`

	// Set when the payment went through the card gateway.
	ProviderRef *string `gorm:"size:100" json:"provider_ref,omitempty"`
	CheckoutURL *string `gorm:"size:500" json:"checkout_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
