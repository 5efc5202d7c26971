package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/models"
)

type StoreGormRepository struct {
	db *gorm.DB
}

func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *StoreGormRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	var s models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreGormRepository) GetByOwner(ctx context.Context, userID string) (*models.Store, error) {
	var s models.Store
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreGormRepository) GetDetail(
	ctx context.Context,
	id string,
	reviews int,
) (*models.Store, error) {

	var s models.Store
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Limit(reviews)
		}).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreGormRepository) List(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&n).Error
	return n, err
}

func (r *StoreGormRepository) TopReviewed(ctx context.Context, limit int) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Order("reviews_count DESC").
		Order("rating DESC").
		Limit(limit).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *StoreGormRepository) Create(ctx context.Context, s *models.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StoreGormRepository) Update(ctx context.Context, s *models.Store) error {
	return r.db.WithContext(ctx).
		Model(s).
		Select("name", "address", "phone", "image_url", "hours", "lat", "lng", "is_open").
		Updates(s).Error
}

func (r *StoreGormRepository) SetOpen(ctx context.Context, id string, open bool) error {
	return r.updateColumn(ctx, id, "is_open", open)
}

func (r *StoreGormRepository) SetImage(ctx context.Context, id string, url string) error {
	return r.updateColumn(ctx, id, "image_url", url)
}

func (r *StoreGormRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StoreGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Store{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

const recomputeAllRatingsSQL = `
UPDATE stores AS s SET
	rating = COALESCE(agg.avg_rating, 0),
	reviews_count = COALESCE(agg.cnt, 0)
FROM stores AS t
LEFT JOIN (
	SELECT store_id, AVG(rating) AS avg_rating, COUNT(*) AS cnt
	FROM reviews
	GROUP BY store_id
) AS agg ON agg.store_id = t.id
WHERE s.id = t.id
	AND (s.rating IS DISTINCT FROM COALESCE(agg.avg_rating, 0)
		OR s.reviews_count IS DISTINCT FROM COALESCE(agg.cnt, 0))`

// RecomputeAllRatings only touches rows whose stored aggregate drifted.
func (r *StoreGormRepository) RecomputeAllRatings(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(recomputeAllRatingsSQL)
	return res.RowsAffected, res.Error
}

var _ domain.Repository = (*StoreGormRepository)(nil)
