package user

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type GetUsers struct {
	repo      Repository
	authority *auth.Authority
}

func NewGetUsers(repo Repository, authority *auth.Authority) *GetUsers {
	return &GetUsers{repo: repo, authority: authority}
}

func (uc *GetUsers) Execute(ctx context.Context, sess session.Session) ([]models.User, error) {
	if err := uc.authority.Require(ctx, sess, access.PermUsers); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx)
}
