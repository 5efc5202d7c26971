package review

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/cache"
	domain "github.com/goofitre/carcare-api/internal/domain/review"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/models"
)

type AddReviewInput struct {
	StoreID string
	Author  string
	Rating  float64
	Comment string
}

type AddReview struct {
	repo  domain.Repository
	cache cache.Invalidator
	audit *audit.Dispatcher
}

func NewAddReview(repo domain.Repository, inv cache.Invalidator, audit *audit.Dispatcher) *AddReview {
	return &AddReview{repo: repo, cache: inv, audit: audit}
}

// Execute stores the review; the store's rating and reviews_count are
// recomputed from scratch in the same transaction.
func (uc *AddReview) Execute(ctx context.Context, in AddReviewInput) (*models.Review, error) {
	if math.IsNaN(in.Rating) || in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return nil, httperr.ErrBusiness("invalid_rating")
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		return nil, httperr.ErrBusiness("author_required")
	}

	rv := &models.Review{
		StoreID: in.StoreID,
		Author:  author,
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
	}

	if err := uc.repo.Add(ctx, rv); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("store_not_found")
		}
		return nil, err
	}

	if err := uc.cache.InvalidateStore(ctx, in.StoreID); err != nil {
		log.Warn().Err(err).Str("store_id", in.StoreID).Msg("cache invalidation failed")
	}

	uc.audit.Dispatch(audit.Event{
		StoreID:  &rv.StoreID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &rv.ID,
		Metadata: map[string]float64{"rating": rv.Rating},
	})

	return rv, nil
}

// ListReviews returns the latest reviews of a store.
type ListReviews struct {
	repo domain.Repository
}

func NewListReviews(repo domain.Repository) *ListReviews {
	return &ListReviews{repo: repo}
}

func (uc *ListReviews) Execute(ctx context.Context, storeID string, take int) ([]models.Review, error) {
	if take <= 0 {
		take = domain.DefaultTake
	}
	if take > domain.MaxTake {
		take = domain.MaxTake
	}
	return uc.repo.ListByStore(ctx, storeID, take)
}
