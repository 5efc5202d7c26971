package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/cache"
	storeDomain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
	"github.com/goofitre/carcare-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ServiceInput struct {
	Name      string
	Slug      string
	Detail    *string
	PriceFrom decimal.NullDecimal
	PriceTo   decimal.NullDecimal
}

func (in ServiceInput) slug() (string, error) {
	slug := validators.Slugify(in.Slug)
	if strings.TrimSpace(in.Slug) == "" {
		slug = validators.Slugify(in.Name)
	}
	if !validators.IsSlug(slug) {
		return "", httperr.ErrBusiness("invalid_slug")
	}
	return slug, nil
}

func (in ServiceInput) validatePrices() error {
	if in.PriceFrom.Valid && in.PriceFrom.Decimal.IsNegative() {
		return httperr.ErrBusiness("invalid_price")
	}
	if in.PriceTo.Valid && in.PriceTo.Decimal.IsNegative() {
		return httperr.ErrBusiness("invalid_price")
	}
	if in.PriceFrom.Valid && in.PriceTo.Valid && in.PriceFrom.Decimal.GreaterThan(in.PriceTo.Decimal) {
		return httperr.ErrBusiness("invalid_price_range")
	}
	return nil
}

// ======================================================
// USE CASE
// ======================================================

// Catalog manages the services of the caller's own store.
type Catalog struct {
	stores   storeDomain.Repository
	services storeDomain.ServiceRepository
	cache    cache.Invalidator
	audit    *audit.Dispatcher
}

func NewCatalog(
	stores storeDomain.Repository,
	services storeDomain.ServiceRepository,
	inv cache.Invalidator,
	audit *audit.Dispatcher,
) *Catalog {
	return &Catalog{
		stores:   stores,
		services: services,
		cache:    inv,
		audit:    audit,
	}
}

func (uc *Catalog) ownStore(ctx context.Context, userID string) (*models.Store, error) {
	s, err := uc.stores.GetByOwner(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("store_required")
	}
	return s, err
}

func (uc *Catalog) List(ctx context.Context, userID string) ([]models.Service, error) {
	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.services.ListByStore(ctx, s.ID)
}

func (uc *Catalog) Create(ctx context.Context, userID string, in ServiceInput) (*models.Service, error) {
	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	slug, err := in.slug()
	if err != nil {
		return nil, err
	}
	if err := in.validatePrices(); err != nil {
		return nil, err
	}

	svc := &models.Service{
		StoreID:   s.ID,
		Name:      strings.TrimSpace(in.Name),
		Slug:      slug,
		Detail:    in.Detail,
		PriceFrom: in.PriceFrom,
		PriceTo:   in.PriceTo,
	}

	if err := uc.services.Create(ctx, svc); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("slug_taken")
		}
		return nil, err
	}

	uc.changed(ctx, userID, s.ID, svc.ID, "service_created")
	return svc, nil
}

// Update keeps the current slug unless a new one is sent.
func (uc *Catalog) Update(ctx context.Context, userID, serviceID string, in ServiceInput) (*models.Service, error) {
	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.services.Get(ctx, s.ID, serviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = svc.Slug
	}
	slug, err := in.slug()
	if err != nil {
		return nil, err
	}
	if err := in.validatePrices(); err != nil {
		return nil, err
	}

	svc.Name = strings.TrimSpace(in.Name)
	svc.Slug = slug
	svc.Detail = in.Detail
	svc.PriceFrom = in.PriceFrom
	svc.PriceTo = in.PriceTo

	if err := uc.services.Update(ctx, svc); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("slug_taken")
		}
		return nil, err
	}

	uc.changed(ctx, userID, s.ID, svc.ID, "service_updated")
	return svc, nil
}

func (uc *Catalog) Delete(ctx context.Context, userID, serviceID string) error {
	s, err := uc.ownStore(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.services.Delete(ctx, s.ID, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("service_not_found")
		}
		return err
	}

	uc.changed(ctx, userID, s.ID, serviceID, "service_deleted")
	return nil
}

func (uc *Catalog) changed(ctx context.Context, userID, storeID, serviceID, action string) {
	if err := uc.cache.InvalidateStore(ctx, storeID); err != nil {
		log.Warn().Err(err).Str("store_id", storeID).Msg("cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		StoreID:  &storeID,
		UserID:   &userID,
		Action:   action,
		Entity:   "service",
		EntityID: &serviceID,
	})
}
