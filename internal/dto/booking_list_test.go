package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goofitre/carcare-api/internal/models"
)

func TestNewBookingList(t *testing.T) {
	paid := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	rows := NewBookingList([]models.Booking{
		{
			ID:      "bk-1",
			Status:  "CONFIRMED",
			Service: &models.Service{Name: "Full Wash"},
			Payment: &models.Payment{Method: "CASH", Amount: decimal.NewFromInt(300), PaidAt: &paid},
		},
		{ID: "bk-2", Status: "PENDING"},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "Full Wash", rows[0].ServiceName)
	require.NotNil(t, rows[0].PaymentMethod)
	assert.Equal(t, "CASH", *rows[0].PaymentMethod)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(300)))

	assert.Empty(t, rows[1].ServiceName)
	assert.Nil(t, rows[1].Amount)
}

func TestNewBookingList_EmptyIsNotNil(t *testing.T) {
	rows := NewBookingList(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
