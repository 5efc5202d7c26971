package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/cache"
	domain "github.com/goofitre/carcare-api/internal/domain/booking"
	storeDomain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
	"github.com/goofitre/carcare-api/internal/notify"
	"github.com/goofitre/carcare-api/internal/payment"
	"github.com/goofitre/carcare-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StoreID   string
	ServiceID string

	CustomerName string
	Phone        string
	Email        *string

	CarModel string
	CarPlate string

	Date string
	Time string
	Note *string

	Method string
	Amount *decimal.Decimal
}

type Options struct {
	Timezone string
	Currency string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	stores   storeDomain.Repository
	services storeDomain.ServiceRepository
	bookings domain.Repository

	gateway  payment.Gateway
	notifier notify.Notifier
	cache    cache.Invalidator
	audit    *audit.Dispatcher

	opts Options
	now  func() time.Time
}

func NewCreateBooking(
	stores storeDomain.Repository,
	services storeDomain.ServiceRepository,
	bookings domain.Repository,
	gateway payment.Gateway,
	notifier notify.Notifier,
	inv cache.Invalidator,
	audit *audit.Dispatcher,
	opts Options,
) *CreateBooking {
	return &CreateBooking{
		stores:   stores,
		services: services,
		bookings: bookings,
		gateway:  gateway,
		notifier: notifier,
		cache:    inv,
		audit:    audit,
		opts:     opts,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Store + service
	// --------------------------------------------------
	store, err := uc.stores.GetByID(ctx, in.StoreID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("store_not_found")
	}
	if err != nil {
		return nil, err
	}

	svc, err := uc.services.Get(ctx, store.ID, in.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Date / time in the store's timezone
	// --------------------------------------------------
	at, err := timezone.ParseLocal(in.Date, in.Time, uc.opts.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Payment
	// --------------------------------------------------
	method, ok := domain.ParseMethod(strings.ToUpper(strings.TrimSpace(in.Method)))
	if !ok {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	amount := svc.PriceFrom.Decimal
	if in.Amount != nil {
		amount = *in.Amount
	}
	if amount.IsNegative() {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	// --------------------------------------------------
	// Booking + payment, one transaction
	// --------------------------------------------------
	paidAt := uc.now()
	b := &models.Booking{
		StoreID:      store.ID,
		ServiceID:    svc.ID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        in.Email,
		CarModel:     strings.TrimSpace(in.CarModel),
		CarPlate:     strings.ToUpper(strings.TrimSpace(in.CarPlate)),
		Date:         at,
		Note:         in.Note,
		Status:       string(domain.InitialStatus()),
	}
	p := &models.Payment{
		Method: string(method),
		Amount: amount,
		PaidAt: &paidAt,
	}

	if err := uc.bookings.CreateWithPayment(ctx, b, p); err != nil {
		return nil, err
	}
	b.Service = svc

	// --------------------------------------------------
	// Card checkout (booking stays valid if the gateway fails)
	// --------------------------------------------------
	if method == domain.MethodCard {
		uc.openCheckout(ctx, b, p, svc.Name)
	}

	// --------------------------------------------------
	// Side effects
	// --------------------------------------------------
	if err := uc.notifier.BookingConfirmed(ctx, notify.BookingMessage{
		BookingID: b.ID,
		Phone:     b.Phone,
		Customer:  b.CustomerName,
		StoreName: store.Name,
		Service:   svc.Name,
		At:        at,
	}); err != nil {
		log.Warn().Err(err).Str("booking_id", b.ID).Msg("notify failed")
	}

	if err := uc.cache.InvalidateStore(ctx, store.ID); err != nil {
		log.Warn().Err(err).Str("store_id", store.ID).Msg("cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		StoreID:  &store.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{
			"method": string(method),
			"amount": amount.StringFixed(2),
		},
	})

	return b, nil
}

func (uc *CreateBooking) openCheckout(ctx context.Context, b *models.Booking, p *models.Payment, title string) {
	var email string
	if b.Email != nil {
		email = *b.Email
	}

	session, err := uc.gateway.CreateCheckout(ctx, payment.Checkout{
		BookingID: b.ID,
		Title:     title,
		Amount:    p.Amount,
		Currency:  uc.opts.Currency,
		Email:     email,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", b.ID).Msg("card checkout failed")
		return
	}
	if session == nil {
		return
	}

	if err := uc.bookings.AttachCheckout(ctx, p.ID, session.ProviderRef, session.URL); err != nil {
		log.Error().Err(err).Str("booking_id", b.ID).Msg("store checkout reference failed")
		return
	}
	p.ProviderRef = &session.ProviderRef
	p.CheckoutURL = &session.URL
}
