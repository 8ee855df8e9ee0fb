package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("nombre_key ASC").
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *ServiceGormRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("service_not_found")
		}
		return nil, fmt.Errorf("failed to find service %d: %w", id, err)
	}
	return &s, nil
}

// NameTaken compara pela chave em minúsculas; excludeID ignora o próprio
// registro numa renomeação.
func (r *ServiceGormRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("nombre_key = ?", models.ServiceNameKey(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check service name: %w", err)
	}
	return count > 0, nil
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	s.NombreKey = models.ServiceNameKey(s.Nombre)
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.DuplicateKey("service_name_taken", err)
		}
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *ServiceGormRepository) Rename(ctx context.Context, id uint, name string) error {
	return r.update(ctx, id, map[string]any{
		"nombre":     name,
		"nombre_key": models.ServiceNameKey(name),
	})
}

func (r *ServiceGormRepository) SetActive(ctx context.Context, id uint, activo int) error {
	return r.update(ctx, id, map[string]any{"activo": activo})
}

func (r *ServiceGormRepository) update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return httperr.DuplicateKey("service_name_taken", res.Error)
		}
		return fmt.Errorf("failed to update service %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("service_not_found")
	}
	return nil
}

// Delete apaga o serviço; turnos antigos mantêm o nome copiado.
func (r *ServiceGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ShiftService{}).
			Where("service_id = ?", id).
			Update("service_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach service %d from shifts: %w", id, err)
		}

		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete service %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("service_not_found")
		}
		return nil
	})
}
