package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/cache"
	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

const detailReviews = 10

type GetStoreDetailInput struct {
	StoreID string
	UserLat *float64
	UserLng *float64
}

// StoreDetail is a store with its services and latest reviews. Distance
// is set when the caller sent a position and the store has one.
type StoreDetail struct {
	*models.Store
	Distance *float64 `json:"distance,omitempty"`
}

type GetStoreDetail struct {
	repo  domain.Repository
	cache cache.Cache
}

func NewGetStoreDetail(repo domain.Repository, c cache.Cache) *GetStoreDetail {
	return &GetStoreDetail{repo: repo, cache: c}
}

func (uc *GetStoreDetail) Execute(ctx context.Context, in GetStoreDetailInput) (*StoreDetail, error) {
	s, err := uc.load(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}

	out := &StoreDetail{Store: s}
	if in.UserLat != nil && in.UserLng != nil && s.HasLocation() {
		d := domain.Distance(*in.UserLat, *in.UserLng, *s.Lat, *s.Lng)
		out.Distance = &d
	}
	return out, nil
}

func (uc *GetStoreDetail) load(ctx context.Context, id string) (*models.Store, error) {
	key := cache.StoreDetailKey(id)

	var cached models.Store
	found, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("store_id", id).Msg("store cache read failed")
	}
	if found {
		return &cached, nil
	}

	s, err := uc.repo.GetDetail(ctx, id, detailReviews)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("store_not_found")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, key, s, cache.StoreDetailTTL); err != nil {
		log.Warn().Err(err).Str("store_id", id).Msg("store cache write failed")
	}
	return s, nil
}
