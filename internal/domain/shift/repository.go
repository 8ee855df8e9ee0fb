package shift

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	// WithinTransaction roda fn com um repositório ligado à mesma transação;
	// qualquer erro desfaz tudo.
	WithinTransaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Customer --------
	FindCustomerByDocumento(
		ctx context.Context,
		documento string,
	) (*models.Customer, error)

	CreateCustomer(
		ctx context.Context,
		c *models.Customer,
	) error

	// -------- Service --------
	FindServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Shift --------
	CreateShift(
		ctx context.Context,
		s *models.Shift,
	) error

	GetShift(
		ctx context.Context,
		id uint,
	) (*models.Shift, error)

	UpdateShiftStatus(
		ctx context.Context,
		id uint,
		status Status,
	) error

	ListShiftsByDate(
		ctx context.Context,
		fecha string,
	) ([]models.Shift, error)

	// -------- Load --------
	// LoadBetween conta turnos não cancelados com from <= fecha < to.
	LoadBetween(
		ctx context.Context,
		from string,
		to string,
	) (Load, error)
}
