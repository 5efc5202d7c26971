package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	domain "github.com/goofitre/carcare-api/internal/domain/booking"
	storeDomain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

const taskListLimit = 100

// StoreBookings serves the store owner's task list and dashboard.
type StoreBookings struct {
	stores   storeDomain.Repository
	bookings domain.Repository
	audit    *audit.Dispatcher

	now func() time.Time
}

func NewStoreBookings(
	stores storeDomain.Repository,
	bookings domain.Repository,
	audit *audit.Dispatcher,
) *StoreBookings {
	return &StoreBookings{stores: stores, bookings: bookings, audit: audit, now: time.Now}
}

func (uc *StoreBookings) ownStore(ctx context.Context, userID string) (*models.Store, error) {
	s, err := uc.stores.GetByOwner(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("store_required")
	}
	return s, err
}

// List ignores unknown status values instead of failing.
func (uc *StoreBookings) List(ctx context.Context, userID, status string) ([]models.Booking, error) {
	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	var filter *domain.Status
	if st, ok := domain.ParseStatus(strings.ToUpper(strings.TrimSpace(status))); ok {
		filter = &st
	}
	return uc.bookings.ListByStore(ctx, s.ID, filter, taskListLimit)
}

func (uc *StoreBookings) UpdateStatus(
	ctx context.Context,
	userID string,
	bookingID string,
	status string,
) (*models.Booking, error) {

	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.ParseStatus(status)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	b, err := uc.bookings.GetForStore(ctx, s.ID, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if err != nil {
		return nil, err
	}

	prev := domain.Status(b.Status)
	if err := domain.CanTransition(prev, next); err != nil {
		return nil, err
	}

	// Another request moved the booking since it was read.
	if err := uc.bookings.UpdateStatus(ctx, b.ID, prev, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_state")
		}
		return nil, err
	}
	b.Status = string(next)

	uc.audit.Dispatch(audit.Event{
		StoreID:  &s.ID,
		UserID:   &userID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"from": string(prev), "to": string(next)},
	})

	return b, nil
}

const (
	dashboardUpcoming    = 5
	dashboardTopServices = 5
)

func (uc *StoreBookings) Dashboard(ctx context.Context, userID string) (*domain.StoreDashboard, error) {
	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var out domain.StoreDashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Stats, err = uc.bookings.Stats(ctx, s.ID)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue30d, err = uc.bookings.Revenue(ctx, s.ID, now.AddDate(0, 0, -30), time.Time{})
		return err
	})
	g.Go(func() (err error) {
		out.Upcoming, err = uc.bookings.Upcoming(ctx, s.ID, now, dashboardUpcoming)
		return err
	})
	g.Go(func() (err error) {
		out.TopServices, err = uc.bookings.TopServices(ctx, s.ID, dashboardTopServices)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBooking backs the public success page.
type GetBooking struct {
	bookings domain.Repository
}

func NewGetBooking(bookings domain.Repository) *GetBooking {
	return &GetBooking{bookings: bookings}
}

func (uc *GetBooking) Execute(ctx context.Context, id string) (*models.Booking, error) {
	b, err := uc.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, err
}
