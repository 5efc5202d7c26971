package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/cache"
	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/domain/user"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

// loadManaged returns the store if actor owns it or is an admin.
func loadManaged(
	ctx context.Context,
	repo domain.Repository,
	actor user.Actor,
	storeID string,
) (*models.Store, error) {

	s, err := repo.GetByID(ctx, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("store_not_found")
	}
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(s.UserID) {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return s, nil
}

// invalidate never fails the write that triggered it.
func invalidate(ctx context.Context, inv cache.Invalidator, storeID string) {
	if err := inv.InvalidateStore(ctx, storeID); err != nil {
		log.Warn().Err(err).Str("store_id", storeID).Msg("cache invalidation failed")
	}
}

// ======================================================
// UPDATE
// ======================================================

type UpdateStoreInput struct {
	Actor   user.Actor
	StoreID string
	StoreInput
}

type UpdateStore struct {
	repo  domain.Repository
	cache cache.Invalidator
	audit *audit.Dispatcher
}

func NewUpdateStore(repo domain.Repository, inv cache.Invalidator, audit *audit.Dispatcher) *UpdateStore {
	return &UpdateStore{repo: repo, cache: inv, audit: audit}
}

func (uc *UpdateStore) Execute(ctx context.Context, in UpdateStoreInput) (*models.Store, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s, err := loadManaged(ctx, uc.repo, in.Actor, in.StoreID)
	if err != nil {
		return nil, err
	}

	s.Name = in.Name
	s.Phone = in.Phone
	s.Address = in.Address
	s.ImageURL = emptyToNil(in.ImageURL)
	s.Hours = emptyToNil(in.Hours)
	s.Lat = in.Lat
	s.Lng = in.Lng
	s.IsOpen = in.IsOpen

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, s.ID)

	uc.audit.Dispatch(audit.Event{
		StoreID:  &s.ID,
		UserID:   &in.Actor.UserID,
		Action:   "store_updated",
		Entity:   "store",
		EntityID: &s.ID,
	})

	return s, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteStore struct {
	repo  domain.Repository
	cache cache.Invalidator
	audit *audit.Dispatcher
}

func NewDeleteStore(repo domain.Repository, inv cache.Invalidator, audit *audit.Dispatcher) *DeleteStore {
	return &DeleteStore{repo: repo, cache: inv, audit: audit}
}

// Execute removes the store; services, bookings, payments and reviews
// go with it through the foreign keys.
func (uc *DeleteStore) Execute(ctx context.Context, actor user.Actor, storeID string) error {
	s, err := loadManaged(ctx, uc.repo, actor, storeID)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, s.ID); err != nil {
		return err
	}

	invalidate(ctx, uc.cache, s.ID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "store_deleted",
		Entity:   "store",
		EntityID: &s.ID,
		Metadata: map[string]string{"name": s.Name, "owner": s.UserID},
	})
	return nil
}

// ======================================================
// OPEN / CLOSE (admin)
// ======================================================

type SetStoreOpen struct {
	repo  domain.Repository
	cache cache.Invalidator
	audit *audit.Dispatcher
}

func NewSetStoreOpen(repo domain.Repository, inv cache.Invalidator, audit *audit.Dispatcher) *SetStoreOpen {
	return &SetStoreOpen{repo: repo, cache: inv, audit: audit}
}

func (uc *SetStoreOpen) Execute(ctx context.Context, actor user.Actor, storeID string, open bool) error {
	if err := uc.repo.SetOpen(ctx, storeID, open); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("store_not_found")
		}
		return err
	}

	invalidate(ctx, uc.cache, storeID)

	uc.audit.Dispatch(audit.Event{
		StoreID:  &storeID,
		UserID:   &actor.UserID,
		Action:   "store_open_changed",
		Entity:   "store",
		EntityID: &storeID,
		Metadata: map[string]bool{"is_open": open},
	})
	return nil
}
