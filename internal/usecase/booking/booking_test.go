package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/goofitre/carcare-api/internal/domain/booking"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
	"github.com/goofitre/carcare-api/internal/payment"
)

type fixture struct {
	stores   *mockStores
	services *mockServices
	bookings *mockBookings
	gateway  *mockGateway
	notifier *spyNotifier
	inv      *spyInvalidator
	uc       *CreateBooking
}

func newFixture() *fixture {
	f := &fixture{
		stores:   new(mockStores),
		services: new(mockServices),
		bookings: new(mockBookings),
		gateway:  new(mockGateway),
		notifier: &spyNotifier{},
		inv:      &spyInvalidator{},
	}
	f.uc = NewCreateBooking(
		f.stores, f.services, f.bookings,
		f.gateway, f.notifier, f.inv, newAudit(),
		Options{Timezone: "Asia/Bangkok", Currency: "THB"},
	)
	f.uc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) withCatalog() {
	f.stores.On("GetByID", mock.Anything, "store-1").
		Return(&models.Store{ID: "store-1", Name: "Shine Wash"}, nil)
	f.services.On("Get", mock.Anything, "store-1", "svc-1").
		Return(&models.Service{
			ID:        "svc-1",
			StoreID:   "store-1",
			Name:      "Full Wash",
			PriceFrom: decimal.NewNullDecimal(decimal.NewFromInt(300)),
		}, nil)
}

func input() CreateBookingInput {
	return CreateBookingInput{
		StoreID:      "store-1",
		ServiceID:    "svc-1",
		CustomerName: " Somchai ",
		Phone:        "0812345678",
		CarModel:     "Civic",
		CarPlate:     "1กข 1234",
		Date:         "2025-03-02",
		Time:         "10:30",
		Method:       "cash",
	}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func TestCreateBooking_CashDefaultsAmountToPriceFrom(t *testing.T) {
	f := newFixture()
	f.withCatalog()

	f.bookings.On("CreateWithPayment", mock.Anything,
		mock.MatchedBy(func(b *models.Booking) bool {
			return b.Status == "CONFIRMED" && b.CustomerName == "Somchai" && b.StoreID == "store-1"
		}),
		mock.MatchedBy(func(p *models.Payment) bool {
			return p.Method == "CASH" && p.Amount.Equal(decimal.NewFromInt(300)) && p.PaidAt != nil
		}),
	).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Booking).ID = "bk-1"
	}).Return(nil)

	b, err := f.uc.Execute(context.Background(), input())
	require.NoError(t, err)

	assert.Equal(t, "bk-1", b.ID)
	assert.Equal(t, "Full Wash", b.Service.Name)

	loc, _ := time.LoadLocation("Asia/Bangkok")
	if loc != nil {
		assert.True(t, b.Date.Equal(time.Date(2025, 3, 2, 10, 30, 0, 0, loc)))
	}

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Shine Wash", f.notifier.sent[0].StoreName)
	assert.Equal(t, []string{"store-1"}, f.inv.ids)
	f.gateway.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
}

func TestCreateBooking_ExplicitAmount(t *testing.T) {
	f := newFixture()
	f.withCatalog()

	f.bookings.On("CreateWithPayment", mock.Anything, mock.Anything,
		mock.MatchedBy(func(p *models.Payment) bool {
			return p.Method == "PROMPTPAY" && p.Amount.Equal(decimal.RequireFromString("450.50"))
		}),
	).Return(nil)

	in := input()
	in.Method = "PROMPTPAY"
	amount := decimal.RequireFromString("450.50")
	in.Amount = &amount

	_, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestCreateBooking_CardAttachesCheckout(t *testing.T) {
	f := newFixture()
	f.withCatalog()

	var captured *models.Payment
	f.bookings.On("CreateWithPayment", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Booking).ID = "bk-1"
			captured = args.Get(2).(*models.Payment)
			captured.ID = "pay-1"
		}).Return(nil)
	f.gateway.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(c payment.Checkout) bool {
		return c.BookingID == "bk-1" && c.Currency == "THB" && c.Title == "Full Wash"
	})).Return(&payment.Session{ProviderRef: "pref-9", URL: "https://pay.example/9"}, nil)
	f.bookings.On("AttachCheckout", mock.Anything, "pay-1", "pref-9", "https://pay.example/9").Return(nil)

	in := input()
	in.Method = "CARD"

	_, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, captured.CheckoutURL)
	assert.Equal(t, "https://pay.example/9", *captured.CheckoutURL)
	f.bookings.AssertExpectations(t)
}

func TestCreateBooking_GatewayFailureKeepsBooking(t *testing.T) {
	f := newFixture()
	f.withCatalog()

	f.bookings.On("CreateWithPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.gateway.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil, errors.New("gateway down"))

	in := input()
	in.Method = "CARD"

	b, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.NotNil(t, b)
	f.bookings.AssertNotCalled(t, "AttachCheckout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_Rejections(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		code   string
	}{
		{"bad method", func(in *CreateBookingInput) { in.Method = "BITCOIN" }, "invalid_payment_method"},
		{"bad date", func(in *CreateBookingInput) { in.Date = "02/03/2025" }, "invalid_date_or_time"},
		{"bad time", func(in *CreateBookingInput) { in.Time = "25:99" }, "invalid_date_or_time"},
		{"negative amount", func(in *CreateBookingInput) { in.Amount = &negative }, "invalid_amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.withCatalog()

			in := input()
			tc.mutate(&in)

			_, err := f.uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			f.bookings.AssertNotCalled(t, "CreateWithPayment", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateBooking_UnknownStoreOrService(t *testing.T) {
	f := newFixture()
	f.stores.On("GetByID", mock.Anything, "store-1").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.uc.Execute(context.Background(), input())
	assert.True(t, httperr.IsBusiness(err, "store_not_found"))

	f = newFixture()
	f.stores.On("GetByID", mock.Anything, "store-1").Return(&models.Store{ID: "store-1"}, nil)
	f.services.On("Get", mock.Anything, "store-1", "svc-1").Return(nil, gorm.ErrRecordNotFound)

	_, err = f.uc.Execute(context.Background(), input())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// --------------------------------------------------
// Store owner
// --------------------------------------------------

func TestStoreBookings_UpdateStatus(t *testing.T) {
	stores := new(mockStores)
	bookings := new(mockBookings)
	uc := NewStoreBookings(stores, bookings, newAudit())

	stores.On("GetByOwner", mock.Anything, "owner-1").Return(&models.Store{ID: "store-1"}, nil)
	bookings.On("GetForStore", mock.Anything, "store-1", "bk-1").
		Return(&models.Booking{ID: "bk-1", Status: "CONFIRMED"}, nil)
	bookings.On("UpdateStatus", mock.Anything, "bk-1", domain.StatusConfirmed, domain.StatusCompleted).Return(nil)

	b, err := uc.UpdateStatus(context.Background(), "owner-1", "bk-1", "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", b.Status)
}

func TestStoreBookings_UpdateStatus_FinalStateRejected(t *testing.T) {
	stores := new(mockStores)
	bookings := new(mockBookings)
	uc := NewStoreBookings(stores, bookings, newAudit())

	stores.On("GetByOwner", mock.Anything, "owner-1").Return(&models.Store{ID: "store-1"}, nil)
	bookings.On("GetForStore", mock.Anything, "store-1", "bk-1").
		Return(&models.Booking{ID: "bk-1", Status: "CANCELLED"}, nil)

	_, err := uc.UpdateStatus(context.Background(), "owner-1", "bk-1", "CONFIRMED")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStoreBookings_UpdateStatus_LostRace(t *testing.T) {
	stores := new(mockStores)
	bookings := new(mockBookings)
	uc := NewStoreBookings(stores, bookings, newAudit())

	stores.On("GetByOwner", mock.Anything, "owner-1").Return(&models.Store{ID: "store-1"}, nil)
	bookings.On("GetForStore", mock.Anything, "store-1", "bk-1").
		Return(&models.Booking{ID: "bk-1", Status: "CONFIRMED"}, nil)
	bookings.On("UpdateStatus", mock.Anything, "bk-1", domain.StatusConfirmed, domain.StatusCancelled).
		Return(gorm.ErrRecordNotFound)

	_, err := uc.UpdateStatus(context.Background(), "owner-1", "bk-1", "CANCELLED")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestStoreBookings_ForeignBookingNotFound(t *testing.T) {
	stores := new(mockStores)
	bookings := new(mockBookings)
	uc := NewStoreBookings(stores, bookings, newAudit())

	stores.On("GetByOwner", mock.Anything, "owner-1").Return(&models.Store{ID: "store-1"}, nil)
	bookings.On("GetForStore", mock.Anything, "store-1", "bk-x").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.UpdateStatus(context.Background(), "owner-1", "bk-x", "CANCELLED")
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestStoreBookings_NoStore(t *testing.T) {
	stores := new(mockStores)
	uc := NewStoreBookings(stores, new(mockBookings), newAudit())

	stores.On("GetByOwner", mock.Anything, "user-9").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.List(context.Background(), "user-9", "")
	assert.True(t, httperr.IsBusiness(err, "store_required"))

	_, err = uc.Dashboard(context.Background(), "user-9")
	assert.True(t, httperr.IsBusiness(err, "store_required"))
}

func TestStoreBookings_ListIgnoresUnknownStatus(t *testing.T) {
	stores := new(mockStores)
	bookings := new(mockBookings)
	uc := NewStoreBookings(stores, bookings, newAudit())

	stores.On("GetByOwner", mock.Anything, "owner-1").Return(&models.Store{ID: "store-1"}, nil)
	bookings.On("ListByStore", mock.Anything, "store-1", (*domain.Status)(nil), 100).
		Return([]models.Booking{{ID: "bk-1"}}, nil).Once()
	bookings.On("ListByStore", mock.Anything, "store-1",
		mock.MatchedBy(func(s *domain.Status) bool { return s != nil && *s == domain.StatusPending }), 100).
		Return([]models.Booking{}, nil).Twice()

	items, err := uc.List(context.Background(), "owner-1", "whatever")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = uc.List(context.Background(), "owner-1", "PENDING")
	require.NoError(t, err)

	// Query strings arrive in any case.
	_, err = uc.List(context.Background(), "owner-1", " pending ")
	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestStoreBookings_Dashboard(t *testing.T) {
	stores := new(mockStores)
	bookings := new(mockBookings)
	uc := NewStoreBookings(stores, bookings, newAudit())
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	stores.On("GetByOwner", mock.Anything, "owner-1").Return(&models.Store{ID: "store-1"}, nil)
	bookings.On("Stats", mock.Anything, "store-1").
		Return(&domain.Stats{Bookings: 8, ByStatus: map[domain.Status]int64{domain.StatusConfirmed: 8}}, nil)
	bookings.On("Revenue", mock.Anything, "store-1", now.AddDate(0, 0, -30), time.Time{}).
		Return(decimal.NewFromInt(1200), nil)
	bookings.On("Upcoming", mock.Anything, "store-1", now, 5).
		Return([]domain.Recent{{ID: "bk-9", ServiceName: "Full wash"}}, nil)
	bookings.On("TopServices", mock.Anything, "store-1", 5).
		Return([]domain.ServiceCount{{ServiceID: "svc-1", Name: "Full wash", Count: 6}}, nil)

	d, err := uc.Dashboard(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.Equal(t, int64(8), d.Bookings)
	assert.True(t, d.Revenue30d.Equal(decimal.NewFromInt(1200)))
	require.Len(t, d.Upcoming, 1)
	assert.Equal(t, "bk-9", d.Upcoming[0].ID)
	require.Len(t, d.TopServices, 1)
	assert.Equal(t, int64(6), d.TopServices[0].Count)
	bookings.AssertExpectations(t)
}

func TestGetBooking_NotFound(t *testing.T) {
	bookings := new(mockBookings)
	bookings.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := NewGetBooking(bookings).Execute(context.Background(), "nope")
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}
