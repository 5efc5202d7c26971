package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goofitre/carcare-api/internal/models"
)

// Stats aggregates bookings and collected payments. An empty store id
// means the whole marketplace.
type Stats struct {
	ByStatus map[Status]int64 `json:"by_status"`
	Bookings int64            `json:"bookings"`
	Payments int64            `json:"payments"`
	Revenue  decimal.Decimal  `json:"revenue"`
}

type Repository interface {
	// -------- Create --------
	// CreateWithPayment writes both rows in a single transaction.
	CreateWithPayment(
		ctx context.Context,
		b *models.Booking,
		p *models.Payment,
	) error

	AttachCheckout(
		ctx context.Context,
		paymentID string,
		providerRef string,
		checkoutURL string,
	) error

	// -------- Read --------
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	GetForStore(
		ctx context.Context,
		storeID string,
		bookingID string,
	) (*models.Booking, error)

	ListByStore(
		ctx context.Context,
		storeID string,
		status *Status,
		limit int,
	) ([]models.Booking, error)

	// -------- State change --------
	// UpdateStatus only writes while the row still holds from; otherwise
	// it reports gorm.ErrRecordNotFound.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	// -------- Dashboard --------
	// An empty storeID in the methods below means the whole marketplace.
	Stats(ctx context.Context, storeID string) (*Stats, error)

	// Revenue sums paid amounts with from <= paid_at < to. A zero to leaves
	// the window open.
	Revenue(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error)

	PaidSince(ctx context.Context, from time.Time) ([]PaidAmount, error)

	// Upcoming lists bookings dated from onwards, soonest first.
	Upcoming(ctx context.Context, storeID string, from time.Time, limit int) ([]Recent, error)

	// Latest lists the most recently created bookings.
	Latest(ctx context.Context, limit int) ([]Recent, error)

	TopServices(ctx context.Context, storeID string, limit int) ([]ServiceCount, error)
}
