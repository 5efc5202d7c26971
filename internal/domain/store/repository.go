package store

import (
	"context"

	"github.com/goofitre/carcare-api/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Store, error)
	GetByOwner(ctx context.Context, userID string) (*models.Store, error)
	// GetDetail loads services (name asc) and the latest reviews.
	GetDetail(ctx context.Context, id string, reviews int) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
	Count(ctx context.Context) (int64, error)
	// TopReviewed orders by reviews_count, then rating.
	TopReviewed(ctx context.Context, limit int) ([]models.Store, error)

	Create(ctx context.Context, s *models.Store) error
	Update(ctx context.Context, s *models.Store) error
	SetOpen(ctx context.Context, id string, open bool) error
	SetImage(ctx context.Context, id string, url string) error
	Delete(ctx context.Context, id string) error

	// RecomputeAllRatings rewrites rating and reviews_count of every store
	// from its reviews.
	RecomputeAllRatings(ctx context.Context) (int64, error)
}

type ServiceRepository interface {
	ListByStore(ctx context.Context, storeID string) ([]models.Service, error)
	Get(ctx context.Context, storeID, serviceID string) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, storeID, serviceID string) error
}
