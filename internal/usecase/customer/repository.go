package customer

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	Paginate(ctx context.Context, search string, page, limit int) ([]models.Customer, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByDocumento(ctx context.Context, documento string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}
