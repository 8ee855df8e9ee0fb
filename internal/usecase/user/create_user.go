package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateUserInput struct {
	Session session.Session

	Nombre   string
	Apellido string
	Usuario  string
	Password string
	Level    int
}

// ======================================================
// USE CASE
// ======================================================

type CreateUser struct {
	repo      Repository
	roles     RoleLookup
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewCreateUser(
	repo Repository,
	roles RoleLookup,
	authority *auth.Authority,
	audit *audit.Dispatcher,
) *CreateUser {
	return &CreateUser{
		repo:      repo,
		roles:     roles,
		authority: authority,
		audit:     audit,
	}
}

func (uc *CreateUser) Execute(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := uc.authority.Require(ctx, in.Session, access.PermUsers); err != nil {
		return nil, err
	}

	if len(in.Password) < auth.MinPasswordLength {
		return nil, errPasswordShort
	}
	if err := levelExists(ctx, uc.roles, in.Level); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Nombre:   validators.NormalizeName(in.Nombre),
		Apellido: validators.NormalizeName(in.Apellido),
		Usuario:  strings.TrimSpace(in.Usuario),
		Password: hash,
		Level:    in.Level,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.NewEvent(in.Session, "user_created", "user", u.ID).
		With(map[string]any{"usuario": u.Usuario, "level": u.Level}))

	return u, nil
}
