package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/cache"
	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateStoreInput struct {
	UserID string
	StoreInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateStore struct {
	repo  domain.Repository
	cache cache.Invalidator
	audit *audit.Dispatcher
}

func NewCreateStore(
	repo domain.Repository,
	inv cache.Invalidator,
	audit *audit.Dispatcher,
) *CreateStore {
	return &CreateStore{
		repo:  repo,
		cache: inv,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateStore) Execute(
	ctx context.Context,
	in CreateStoreInput,
) (*models.Store, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	// one store per owner; the unique index on user_id backs this up
	_, err := uc.repo.GetByOwner(ctx, in.UserID)
	switch {
	case err == nil:
		return nil, httperr.ErrBusiness("store_already_exists")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	s := &models.Store{
		UserID:   in.UserID,
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		ImageURL: emptyToNil(in.ImageURL),
		Hours:    emptyToNil(in.Hours),
		Lat:      in.Lat,
		Lng:      in.Lng,
		IsOpen:   in.IsOpen,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("store_already_exists")
		}
		return nil, err
	}

	invalidate(ctx, uc.cache, s.ID)

	uc.audit.Dispatch(audit.Event{
		StoreID:  &s.ID,
		UserID:   &in.UserID,
		Action:   "store_created",
		Entity:   "store",
		EntityID: &s.ID,
	})

	return s, nil
}
