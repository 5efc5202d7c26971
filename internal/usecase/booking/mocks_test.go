package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/goofitre/carcare-api/internal/audit"
	domain "github.com/goofitre/carcare-api/internal/domain/booking"
	"github.com/goofitre/carcare-api/internal/models"
	"github.com/goofitre/carcare-api/internal/notify"
	"github.com/goofitre/carcare-api/internal/payment"
)

// --------------------------------------------------
// Stores / services
// --------------------------------------------------

type mockStores struct {
	mock.Mock
}

func (m *mockStores) one(args mock.Arguments) (*models.Store, error) {
	if s, ok := args.Get(0).(*models.Store); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStores) GetByID(ctx context.Context, id string) (*models.Store, error) {
	return m.one(m.Called(ctx, id))
}

func (m *mockStores) GetByOwner(ctx context.Context, userID string) (*models.Store, error) {
	return m.one(m.Called(ctx, userID))
}

func (m *mockStores) GetDetail(ctx context.Context, id string, reviews int) (*models.Store, error) {
	return m.one(m.Called(ctx, id, reviews))
}

func (m *mockStores) List(ctx context.Context) ([]models.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *mockStores) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStores) Create(ctx context.Context, s *models.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStores) Update(ctx context.Context, s *models.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStores) SetOpen(ctx context.Context, id string, open bool) error {
	return m.Called(ctx, id, open).Error(0)
}

func (m *mockStores) SetImage(ctx context.Context, id, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockStores) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStores) TopReviewed(ctx context.Context, limit int) ([]models.Store, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *mockStores) RecomputeAllRatings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockServices struct {
	mock.Mock
}

func (m *mockServices) ListByStore(ctx context.Context, storeID string) ([]models.Service, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockServices) Get(ctx context.Context, storeID, serviceID string) (*models.Service, error) {
	args := m.Called(ctx, storeID, serviceID)
	if s, ok := args.Get(0).(*models.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServices) Create(ctx context.Context, s *models.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServices) Update(ctx context.Context, s *models.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockServices) Delete(ctx context.Context, storeID, serviceID string) error {
	return m.Called(ctx, storeID, serviceID).Error(0)
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) one(args mock.Arguments) (*models.Booking, error) {
	if b, ok := args.Get(0).(*models.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookings) CreateWithPayment(ctx context.Context, b *models.Booking, p *models.Payment) error {
	return m.Called(ctx, b, p).Error(0)
}

func (m *mockBookings) AttachCheckout(ctx context.Context, paymentID, providerRef, checkoutURL string) error {
	return m.Called(ctx, paymentID, providerRef, checkoutURL).Error(0)
}

func (m *mockBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.one(m.Called(ctx, id))
}

func (m *mockBookings) GetForStore(ctx context.Context, storeID, bookingID string) (*models.Booking, error) {
	return m.one(m.Called(ctx, storeID, bookingID))
}

func (m *mockBookings) ListByStore(ctx context.Context, storeID string, status *domain.Status, limit int) ([]models.Booking, error) {
	args := m.Called(ctx, storeID, status, limit)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookings) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockBookings) Stats(ctx context.Context, storeID string) (*domain.Stats, error) {
	args := m.Called(ctx, storeID)
	if s, ok := args.Get(0).(*domain.Stats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookings) Revenue(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, storeID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockBookings) PaidSince(ctx context.Context, from time.Time) ([]domain.PaidAmount, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]domain.PaidAmount), args.Error(1)
}

func (m *mockBookings) Upcoming(ctx context.Context, storeID string, from time.Time, limit int) ([]domain.Recent, error) {
	args := m.Called(ctx, storeID, from, limit)
	return args.Get(0).([]domain.Recent), args.Error(1)
}

func (m *mockBookings) Latest(ctx context.Context, limit int) ([]domain.Recent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Recent), args.Error(1)
}

func (m *mockBookings) TopServices(ctx context.Context, storeID string, limit int) ([]domain.ServiceCount, error) {
	args := m.Called(ctx, storeID, limit)
	return args.Get(0).([]domain.ServiceCount), args.Error(1)
}

// --------------------------------------------------
// Side effects
// --------------------------------------------------

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateCheckout(ctx context.Context, c payment.Checkout) (*payment.Session, error) {
	args := m.Called(ctx, c)
	if s, ok := args.Get(0).(*payment.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type spyNotifier struct {
	sent []notify.BookingMessage
}

func (s *spyNotifier) BookingConfirmed(_ context.Context, m notify.BookingMessage) error {
	s.sent = append(s.sent, m)
	return nil
}

type spyInvalidator struct {
	ids []string
}

func (s *spyInvalidator) InvalidateStore(_ context.Context, id string) error {
	s.ids = append(s.ids, id)
	return nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

func newAudit() *audit.Dispatcher { return audit.NewDispatcher(nopSink{}) }
