package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("user_not_found")
		}
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByUsuario faz comparação exata (sem normalizar caixa).
func (r *UserGormRepository) FindByUsuario(ctx context.Context, usuario string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("usuario = ?", usuario).
		First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("user_not_found")
		}
		return nil, fmt.Errorf("failed to find user %s: %w", usuario, err)
	}
	return &user, nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserGormRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.DuplicateKey("username_taken", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserGormRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return httperr.DuplicateKey("username_taken", res.Error)
		}
		return fmt.Errorf("failed to update user id %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("user_not_found")
	}
	return nil
}

func (r *UserGormRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user id %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("user_not_found")
	}
	return nil
}

func (r *UserGormRepository) SetLastLogin(ctx context.Context, id uint, at string) error {
	return r.Update(ctx, id, map[string]any{"last_login": at})
}

func (r *UserGormRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	return r.Update(ctx, id, map[string]any{"password": hash})
}
