package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/goofitre/carcare-api/internal/domain/booking"
	"github.com/goofitre/carcare-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *BookingGormRepository) CreateWithPayment(
	ctx context.Context,
	b *models.Booking,
	p *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}

		p.BookingID = b.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		b.Payment = p
		return nil
	})
}

func (r *BookingGormRepository) AttachCheckout(
	ctx context.Context,
	paymentID string,
	providerRef string,
	checkoutURL string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{
			"provider_ref": providerRef,
			"checkout_url": checkoutURL,
		}).Error
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Payment").
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetForStore(
	ctx context.Context,
	storeID string,
	bookingID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", bookingID, storeID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListByStore(
	ctx context.Context,
	storeID string,
	status *domain.Status,
	limit int,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Payment").
		Where("store_id = ?", storeID)
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var bookings []models.Booking
	if err := q.
		Order("date DESC").
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------

type statusCount struct {
	Status string
	Count  int64
}

type paymentTotal struct {
	Count int64
	Sum   decimal.Decimal
}

func (r *BookingGormRepository) Stats(ctx context.Context, storeID string) (*domain.Stats, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if storeID != "" {
			return db.Where("bookings.store_id = ?", storeID)
		}
		return db
	}

	var counts []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	var paid paymentTotal
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Scopes(scope).
		Where("payments.paid_at IS NOT NULL").
		Select("COUNT(*) AS count, COALESCE(SUM(payments.amount), 0) AS sum").
		Scan(&paid).Error; err != nil {
		return nil, err
	}

	st := &domain.Stats{
		ByStatus: map[domain.Status]int64{},
		Payments: paid.Count,
		Revenue:  paid.Sum,
	}
	for _, c := range counts {
		st.ByStatus[domain.Status(c.Status)] = c.Count
		st.Bookings += c.Count
	}
	return st, nil
}

func (r *BookingGormRepository) paidScope(storeID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("payments.paid_at IS NOT NULL")
		if storeID != "" {
			db = db.Joins("JOIN bookings ON bookings.id = payments.booking_id").
				Where("bookings.store_id = ?", storeID)
		}
		return db
	}
}

func (r *BookingGormRepository) Revenue(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Scopes(r.paidScope(storeID)).
		Where("payments.paid_at >= ?", from)
	if !to.IsZero() {
		q = q.Where("payments.paid_at < ?", to)
	}

	var total paymentTotal
	if err := q.Select("COUNT(*) AS count, COALESCE(SUM(payments.amount), 0) AS sum").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total.Sum, nil
}

func (r *BookingGormRepository) PaidSince(ctx context.Context, from time.Time) ([]domain.PaidAmount, error) {
	var rows []domain.PaidAmount
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Scopes(r.paidScope("")).
		Where("payments.paid_at >= ?", from).
		Select("payments.amount AS amount, payments.paid_at AS paid_at").
		Order("payments.paid_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// recentQuery joins store and service names onto bookings.
func (r *BookingGormRepository) recentQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN stores ON stores.id = bookings.store_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Select("bookings.id, stores.name AS store_name, services.name AS service_name, " +
			"bookings.customer_name, bookings.status, bookings.date, bookings.created_at")
}

func (r *BookingGormRepository) Upcoming(ctx context.Context, storeID string, from time.Time, limit int) ([]domain.Recent, error) {
	q := r.recentQuery(ctx).Where("bookings.date >= ?", from)
	if storeID != "" {
		q = q.Where("bookings.store_id = ?", storeID)
	}

	rows := []domain.Recent{}
	if err := q.Order("bookings.date ASC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) Latest(ctx context.Context, limit int) ([]domain.Recent, error) {
	rows := []domain.Recent{}
	if err := r.recentQuery(ctx).
		Order("bookings.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) TopServices(ctx context.Context, storeID string, limit int) ([]domain.ServiceCount, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN services ON services.id = bookings.service_id").
		Select("bookings.service_id AS service_id, services.name AS name, COUNT(*) AS count").
		Group("bookings.service_id, services.name")
	if storeID != "" {
		q = q.Where("bookings.store_id = ?", storeID)
	}

	rows := []domain.ServiceCount{}
	if err := q.Order("count DESC").Order("services.name ASC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
