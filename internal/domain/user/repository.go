package user

import (
	"context"

	"github.com/goofitre/carcare-api/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	SetRole(ctx context.Context, id string, role Role) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Newest(ctx context.Context, limit int) ([]models.User, error)
}
