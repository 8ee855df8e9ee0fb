package user

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type ChangePasswordInput struct {
	Session session.Session
	ID      uint

	Current string
	New     string
}

type ChangePassword struct {
	repo      Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewChangePassword(
	repo Repository,
	authority *auth.Authority,
	audit *audit.Dispatcher,
) *ChangePassword {
	return &ChangePassword{
		repo:      repo,
		authority: authority,
		audit:     audit,
	}
}

// Execute: a própria senha exige a senha atual; a de outro usuário exige
// a permissão de gestão (a senha atual dele não é pedida).
func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) error {
	if err := uc.authority.RequireSession(in.Session); err != nil {
		return err
	}

	self := in.Session.IsSelf(in.ID)
	if !self {
		if err := uc.authority.Require(ctx, in.Session, access.PermUsers); err != nil {
			return err
		}
	}

	u, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}

	if self && !auth.VerifyPassword(u.Password, in.Current) {
		return errCurrentPassword
	}
	if len(in.New) < auth.MinPasswordLength {
		return errPasswordShort
	}

	hash, err := auth.HashPassword(in.New)
	if err != nil {
		return err
	}
	if err := uc.repo.SetPassword(ctx, u.ID, hash); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.NewEvent(in.Session, "user_password_changed", "user", u.ID))
	return nil
}
