package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

// GetOwnStore returns the caller's store for the owner screens.
type GetOwnStore struct {
	repo domain.Repository
}

func NewGetOwnStore(repo domain.Repository) *GetOwnStore {
	return &GetOwnStore{repo: repo}
}

func (uc *GetOwnStore) Execute(ctx context.Context, userID string) (*models.Store, error) {
	s, err := uc.repo.GetByOwner(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("store_not_found")
	}
	return s, err
}

// ListStores is the admin overview of every store.
type ListStores struct {
	repo domain.Repository
}

func NewListStores(repo domain.Repository) *ListStores {
	return &ListStores{repo: repo}
}

func (uc *ListStores) Execute(ctx context.Context) ([]models.Store, error) {
	return uc.repo.List(ctx)
}
