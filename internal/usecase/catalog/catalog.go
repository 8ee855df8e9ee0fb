package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type Repository interface {
	List(ctx context.Context) ([]models.Service, error)
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, s *models.Service) error
	Rename(ctx context.Context, id uint, name string) error
	SetActive(ctx context.Context, id uint, activo int) error
	Delete(ctx context.Context, id uint) error
}

// Services é o catálogo de serviços do salão. Nomes são únicos sem
// diferenciar maiúsculas.
type Services struct {
	repo      Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewServices(repo Repository, authority *auth.Authority, audit *audit.Dispatcher) *Services {
	return &Services{repo: repo, authority: authority, audit: audit}
}

func (s *Services) GetAll(ctx context.Context, sess session.Session) ([]models.Service, error) {
	if err := s.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *Services) Create(ctx context.Context, sess session.Session, nombre string) (*models.Service, error) {
	if err := s.authority.Require(ctx, sess, access.PermServices); err != nil {
		return nil, err
	}

	nombre, err := s.checkName(ctx, nombre, 0)
	if err != nil {
		return nil, err
	}

	row := &models.Service{Nombre: nombre, Activo: 1}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.NewEvent(sess, "service_created", "service", row.ID).
		With(map[string]string{"nombre": row.Nombre}))
	return row, nil
}

func (s *Services) Update(ctx context.Context, sess session.Session, id uint, nombre string) (*models.Service, error) {
	if err := s.authority.Require(ctx, sess, access.PermServices); err != nil {
		return nil, err
	}

	nombre, err := s.checkName(ctx, nombre, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Rename(ctx, id, nombre); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.NewEvent(sess, "service_renamed", "service", id).
		With(map[string]string{"nombre": nombre}))
	return s.repo.FindByID(ctx, id)
}

// Toggle lê o estado atual e grava o complemento.
func (s *Services) Toggle(ctx context.Context, sess session.Session, id uint) (*models.Service, error) {
	if err := s.authority.Require(ctx, sess, access.PermServices); err != nil {
		return nil, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := 1
	if row.Activo == 1 {
		next = 0
	}
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		return nil, err
	}
	row.Activo = next

	s.audit.Dispatch(audit.NewEvent(sess, "service_toggled", "service", id).
		With(map[string]int{"activo": next}))
	return row, nil
}

func (s *Services) Delete(ctx context.Context, sess session.Session, id uint) error {
	if err := s.authority.Require(ctx, sess, access.PermServices); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Dispatch(audit.NewEvent(sess, "service_deleted", "service", id))
	return nil
}

func (s *Services) checkName(ctx context.Context, nombre string, excludeID uint) (string, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return "", httperr.Validation("invalid_request")
	}

	taken, err := s.repo.NameTaken(ctx, nombre, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", httperr.DuplicateKey("service_name_taken", nil)
	}
	return nombre, nil
}
