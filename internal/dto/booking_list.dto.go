package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goofitre/carcare-api/internal/models"
)

// BookingListDTO is one row of the store owner's task list.
type BookingListDTO struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	CarModel     string    `json:"car_model"`
	CarPlate     string    `json:"car_plate"`
	Note         *string   `json:"note"`
	ServiceName  string    `json:"service_name"`

	PaymentMethod *string          `json:"payment_method"`
	Amount        *decimal.Decimal `json:"amount"`
	PaidAt        *time.Time       `json:"paid_at"`
}

func NewBookingList(items []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(items))
	for _, b := range items {
		row := BookingListDTO{
			ID:           b.ID,
			Date:         b.Date,
			Status:       b.Status,
			CustomerName: b.CustomerName,
			Phone:        b.Phone,
			CarModel:     b.CarModel,
			CarPlate:     b.CarPlate,
			Note:         b.Note,
		}
		if b.Service != nil {
			row.ServiceName = b.Service.Name
		}
		if p := b.Payment; p != nil {
			row.PaymentMethod = &p.Method
			row.Amount = &p.Amount
			row.PaidAt = p.PaidAt
		}
		out = append(out, row)
	}
	return out
}
