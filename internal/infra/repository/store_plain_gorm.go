package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/models"
)

// StorePlainSearch filters and sorts stores without any notion of distance.
type StorePlainSearch struct {
	db *gorm.DB
}

func NewStorePlainSearch(db *gorm.DB) *StorePlainSearch {
	return &StorePlainSearch{db: db}
}

func (s *StorePlainSearch) Find(ctx context.Context, c domain.Criteria) (*domain.Result, error) {
	filters := plainFilters(c)

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&models.Store{}).
		Scopes(filters).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}

	var rows []models.Store
	q := s.db.WithContext(ctx).
		Scopes(filters).
		Order(plainOrder(c.Sort)).
		Order("id ASC").
		Limit(c.Take)
	if c.Skip > 0 {
		q = q.Offset(c.Skip)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for i := range rows {
		items = append(items, toItem(&rows[i]))
	}

	return &domain.Result{Items: items, Total: total}, nil
}

func plainFilters(c domain.Criteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("rating >= ?", c.MinRating)
		if c.Q != "" {
			like := "%" + c.Q + "%"
			db = db.Where("(name LIKE ? OR address LIKE ?)", like, like)
		}
		if c.OnlyOpen {
			db = db.Where("is_open = ?", true)
		}
		return db
	}
}

func plainOrder(sort domain.SortKey) string {
	switch sort {
	case domain.SortRatingDesc:
		return "rating DESC"
	case domain.SortRatingAsc:
		return "rating ASC"
	default:
		return "reviews_count DESC"
	}
}

func toItem(s *models.Store) domain.Item {
	return domain.Item{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		Phone:        s.Phone,
		ImageURL:     s.ImageURL,
		Hours:        s.Hours,
		Lat:          s.Lat,
		Lng:          s.Lng,
		IsOpen:       s.IsOpen,
		Rating:       s.Rating,
		ReviewsCount: s.ReviewsCount,
		CreatedAt:    s.CreatedAt,
	}
}

var _ domain.Strategy = (*StorePlainSearch)(nil)
