package review

import (
	"context"

	"github.com/goofitre/carcare-api/internal/models"
)

const (
	DefaultTake = 10
	MaxTake     = 50
	MinRating   = 1.0
	MaxRating   = 5.0
)

type Repository interface {
	ListByStore(ctx context.Context, storeID string, take int) ([]models.Review, error)

	// Add inserts the review and rewrites the store's rating and
	// reviews_count from all of its reviews, in one transaction.
	Add(ctx context.Context, r *models.Review) error
}
