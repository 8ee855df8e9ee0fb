package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type RoleGormRepository struct {
	db *gorm.DB
}

func NewRoleGormRepository(db *gorm.DB) *RoleGormRepository {
	return &RoleGormRepository{db: db}
}

func (r *RoleGormRepository) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("role_not_found")
		}
		return nil, fmt.Errorf("failed to find role %d: %w", id, err)
	}
	return &role, nil
}

func (r *RoleGormRepository) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (r *RoleGormRepository) Update(ctx context.Context, role *models.Role) error {
	res := r.db.WithContext(ctx).
		Model(&models.Role{}).
		Where("id = ?", role.ID).
		Updates(map[string]any{
			"label":       role.Label,
			"permissions": role.Permissions,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update role %d: %w", role.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("role_not_found")
	}
	return nil
}
