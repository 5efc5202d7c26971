package admin

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	bookingDomain "github.com/goofitre/carcare-api/internal/domain/booking"
	storeDomain "github.com/goofitre/carcare-api/internal/domain/store"
	userDomain "github.com/goofitre/carcare-api/internal/domain/user"
	"github.com/goofitre/carcare-api/internal/models"
	"github.com/goofitre/carcare-api/internal/timezone"
)

const (
	seriesDays     = 14
	latestBookings = 10
	newestUsers    = 6
	topStores      = 5
)

type Revenue struct {
	Week  bookingDomain.Window         `json:"week"`
	Month bookingDomain.Window         `json:"month"`
	Daily []bookingDomain.DailyRevenue `json:"daily"`
}

type Overview struct {
	Users   int64                `json:"users"`
	Stores  int64                `json:"stores"`
	Stats   *bookingDomain.Stats `json:"bookings"`
	Revenue Revenue              `json:"revenue"`

	LatestBookings []bookingDomain.Recent `json:"latest_bookings"`
	NewestUsers    []models.User          `json:"newest_users"`
	TopStores      []models.Store         `json:"top_stores"`
}

type Dashboard struct {
	users    userDomain.Repository
	stores   storeDomain.Repository
	bookings bookingDomain.Repository

	loc *time.Location
	now func() time.Time
}

func NewDashboard(
	users userDomain.Repository,
	stores storeDomain.Repository,
	bookings bookingDomain.Repository,
	tz string,
) *Dashboard {
	return &Dashboard{
		users:    users,
		stores:   stores,
		bookings: bookings,
		loc:      timezone.Location(tz),
		now:      time.Now,
	}
}

// Execute runs every aggregate concurrently.
func (uc *Dashboard) Execute(ctx context.Context) (*Overview, error) {
	now := uc.now()
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	var (
		out                            Overview
		week, prevWeek, month, prevMon decimal.Decimal
		paid                           []bookingDomain.PaidAmount
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Users, err = uc.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Stores, err = uc.stores.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Stats, err = uc.bookings.Stats(ctx, "")
		return err
	})

	// -------- revenue windows --------
	g.Go(func() (err error) {
		week, err = uc.bookings.Revenue(ctx, "", days(7), time.Time{})
		return err
	})
	g.Go(func() (err error) {
		prevWeek, err = uc.bookings.Revenue(ctx, "", days(14), days(7))
		return err
	})
	g.Go(func() (err error) {
		month, err = uc.bookings.Revenue(ctx, "", days(30), time.Time{})
		return err
	})
	g.Go(func() (err error) {
		prevMon, err = uc.bookings.Revenue(ctx, "", days(60), days(30))
		return err
	})
	g.Go(func() (err error) {
		paid, err = uc.bookings.PaidSince(ctx, days(seriesDays))
		return err
	})

	// -------- lists --------
	g.Go(func() (err error) {
		out.LatestBookings, err = uc.bookings.Latest(ctx, latestBookings)
		return err
	})
	g.Go(func() (err error) {
		out.NewestUsers, err = uc.users.Newest(ctx, newestUsers)
		return err
	})
	g.Go(func() (err error) {
		out.TopStores, err = uc.stores.TopReviewed(ctx, topStores)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Revenue = Revenue{
		Week:  bookingDomain.NewWindow(week, prevWeek),
		Month: bookingDomain.NewWindow(month, prevMon),
		Daily: bookingDomain.DailySeries(now, seriesDays, uc.loc, paid),
	}
	return &out, nil
}
