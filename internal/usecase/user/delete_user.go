package user

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type DeleteUser struct {
	repo      Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewDeleteUser(
	repo Repository,
	authority *auth.Authority,
	audit *audit.Dispatcher,
) *DeleteUser {
	return &DeleteUser{
		repo:      repo,
		authority: authority,
		audit:     audit,
	}
}

// Execute nunca apaga a conta da sessão atual, nem para o administrador.
func (uc *DeleteUser) Execute(ctx context.Context, sess session.Session, id uint) error {
	if err := uc.authority.RequireSession(sess); err != nil {
		return err
	}
	if sess.IsSelf(id) {
		return errSelfDelete
	}
	if err := uc.authority.Require(ctx, sess, access.PermUsers); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.NewEvent(sess, "user_deleted", "user", id))
	return nil
}
