package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ShiftGormRepository struct {
	db *gorm.DB
}

func NewShiftGormRepository(db *gorm.DB) *ShiftGormRepository {
	return &ShiftGormRepository{db: db}
}

var _ domain.Repository = (*ShiftGormRepository)(nil)

// ======================================================
// TRANSACTION
// ======================================================

func (r *ShiftGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ShiftGormRepository{db: tx})
	})
}

// ======================================================
// CUSTOMER
// ======================================================

func (r *ShiftGormRepository) FindCustomerByDocumento(
	ctx context.Context,
	documento string,
) (*models.Customer, error) {
	return findCustomerByDocumento(r.db.WithContext(ctx), documento)
}

func (r *ShiftGormRepository) CreateCustomer(
	ctx context.Context,
	c *models.Customer,
) error {
	return createCustomer(r.db.WithContext(ctx), c)
}

// ======================================================
// SERVICE
// ======================================================

func (r *ShiftGormRepository) FindServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return []models.Service{}, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	return services, nil
}

// ======================================================
// SHIFT
// ======================================================

func (r *ShiftGormRepository) CreateShift(
	ctx context.Context,
	s *models.Shift,
) error {
	// associações (shift_services) são inseridas junto
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

func (r *ShiftGormRepository) GetShift(
	ctx context.Context,
	id uint,
) (*models.Shift, error) {

	var s models.Shift
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&s, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("shift_not_found")
		}
		return nil, fmt.Errorf("failed to find shift %d: %w", id, err)
	}
	return &s, nil
}

func (r *ShiftGormRepository) UpdateShiftStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", id).
		Update("estado", string(status))
	if res.Error != nil {
		return fmt.Errorf("failed to update shift %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("shift_not_found")
	}
	return nil
}

// ListShiftsByDate devolve todos os turnos do dia, qualquer estado,
// ordenados pela hora.
func (r *ShiftGormRepository) ListShiftsByDate(
	ctx context.Context,
	fecha string,
) ([]models.Shift, error) {

	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("fecha = ?", fecha).
		Order("hora ASC").
		Order("id ASC").
		Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("failed to list shifts for %s: %w", fecha, err)
	}
	return shifts, nil
}

// ======================================================
// LOAD
// ======================================================

func (r *ShiftGormRepository) LoadBetween(
	ctx context.Context,
	from string,
	to string,
) (domain.Load, error) {

	var rows []struct {
		Fecha string
		Total int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Select("fecha, COUNT(*) AS total").
		Where("fecha >= ? AND fecha < ?", from, to).
		Where("estado <> ?", string(domain.StatusCancelled)).
		Group("fecha").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate load: %w", err)
	}

	load := make(domain.Load, len(rows))
	for _, row := range rows {
		load[row.Fecha] = row.Total
	}
	return load, nil
}
