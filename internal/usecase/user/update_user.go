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

// UpdateUserInput: campos nil não são alterados.
type UpdateUserInput struct {
	Session session.Session
	ID      uint

	Nombre   *string
	Apellido *string
	Usuario  *string
	Level    *int
}

type UpdateUser struct {
	repo      Repository
	roles     RoleLookup
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewUpdateUser(
	repo Repository,
	roles RoleLookup,
	authority *auth.Authority,
	audit *audit.Dispatcher,
) *UpdateUser {
	return &UpdateUser{
		repo:      repo,
		roles:     roles,
		authority: authority,
		audit:     audit,
	}
}

// Execute: o próprio usuário edita nome, sobrenome e login sem a
// permissão de gestão; mudar o nível sempre exige a permissão, mesmo no
// próprio cadastro.
func (uc *UpdateUser) Execute(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if err := uc.authority.RequireSession(in.Session); err != nil {
		return nil, err
	}

	if !in.Session.IsSelf(in.ID) {
		if err := uc.authority.Require(ctx, in.Session, access.PermUsers); err != nil {
			return nil, err
		}
	}

	current, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.Level != nil && *in.Level != current.Level {
		if err := uc.authority.Require(ctx, in.Session, access.PermUsers); err != nil {
			return nil, err
		}
		if err := levelExists(ctx, uc.roles, *in.Level); err != nil {
			return nil, err
		}
		fields["level"] = *in.Level
	}

	if in.Nombre != nil {
		fields["nombre"] = validators.NormalizeName(*in.Nombre)
	}
	if in.Apellido != nil {
		fields["apellido"] = validators.NormalizeName(*in.Apellido)
	}
	if in.Usuario != nil {
		fields["usuario"] = strings.TrimSpace(*in.Usuario)
	}

	if err := uc.repo.Update(ctx, in.ID, fields); err != nil {
		return nil, err
	}

	updated, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if _, ok := fields["level"]; ok {
		uc.authority.RefreshLevel(updated.ID, updated.Level)
	}

	uc.audit.Dispatch(audit.NewEvent(in.Session, "user_updated", "user", updated.ID).
		With(changedKeys(fields)))

	return updated, nil
}

func changedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return keys
}
