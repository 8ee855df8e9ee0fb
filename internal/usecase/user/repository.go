package user

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	SetPassword(ctx context.Context, id uint, hash string) error
}

type RoleLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Role, error)
}

// levelExists: o nível precisa corresponder a um papel cadastrado.
func levelExists(ctx context.Context, roles RoleLookup, level int) error {
	if level < 1 {
		return errInvalidLevel
	}
	if _, err := roles.FindByID(ctx, uint(level)); err != nil {
		return errInvalidLevel
	}
	return nil
}
