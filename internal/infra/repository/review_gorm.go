package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/goofitre/carcare-api/internal/domain/review"
	"github.com/goofitre/carcare-api/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) ListByStore(
	ctx context.Context,
	storeID string,
	take int,
) ([]models.Review, error) {

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("date DESC").
		Limit(take).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

type ratingAggregate struct {
	Avg   float64
	Count int64
}

func (r *ReviewGormRepository) Add(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serialise concurrent reviews of the same store
		var s models.Store
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", rv.StoreID).
			First(&s).Error; err != nil {
			return err
		}

		if err := tx.Create(rv).Error; err != nil {
			return err
		}

		var agg ratingAggregate
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("store_id = ?", rv.StoreID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Store{}).
			Where("id = ?", rv.StoreID).
			Updates(map[string]any{
				"rating":        agg.Avg,
				"reviews_count": agg.Count,
			}).Error
	})
}

var _ domain.Repository = (*ReviewGormRepository)(nil)
