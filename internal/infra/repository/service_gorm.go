package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) ListByStore(ctx context.Context, storeID string) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Get scopes the lookup to the store so a foreign service reads as missing.
func (r *ServiceGormRepository) Get(ctx context.Context, storeID, serviceID string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", serviceID, storeID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).
		Model(s).
		Where("store_id = ?", s.StoreID).
		Select("name", "slug", "detail", "price_from", "price_to").
		Updates(s).Error
}

func (r *ServiceGormRepository) Delete(ctx context.Context, storeID, serviceID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", serviceID, storeID).
		Delete(&models.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ domain.ServiceRepository = (*ServiceGormRepository)(nil)
