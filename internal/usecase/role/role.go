package role

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
	FindByID(ctx context.Context, id uint) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Update(ctx context.Context, role *models.Role) error
}

// ======================================================
// GET ALL
// ======================================================

type GetAll struct {
	repo      Repository
	authority *auth.Authority
}

func NewGetAll(repo Repository, authority *auth.Authority) *GetAll {
	return &GetAll{repo: repo, authority: authority}
}

func (uc *GetAll) Execute(ctx context.Context, sess session.Session) ([]models.Role, error) {
	if err := uc.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateInput struct {
	Session     session.Session
	ID          uint
	Label       string
	Permissions []string
}

type Update struct {
	repo      Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewUpdate(repo Repository, authority *auth.Authority, audit *audit.Dispatcher) *Update {
	return &Update{repo: repo, authority: authority, audit: audit}
}

// Execute só é permitido ao nível 1 (não basta ter a permissão de
// gestão). O papel 1 nunca é alterado: devolve o registro gravado.
func (uc *Update) Execute(ctx context.Context, in UpdateInput) (*models.Role, error) {
	if err := uc.authority.RequireLevel(ctx, in.Session, access.LevelAdmin); err != nil {
		return nil, err
	}

	current, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if current.ID == access.LevelAdmin {
		return current, nil
	}

	perms := make(models.Permissions, 0, len(in.Permissions))
	seen := make(map[string]bool, len(in.Permissions))
	for _, p := range in.Permissions {
		p = strings.TrimSpace(p)
		if !access.IsKnown(p) {
			return nil, httperr.Validation("invalid_permission")
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		perms = append(perms, p)
	}

	label := strings.TrimSpace(in.Label)
	if label == "" {
		label = current.Label
	}

	updated := &models.Role{ID: current.ID, Label: label, Permissions: perms}
	if err := uc.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.NewEvent(in.Session, "role_updated", "role", updated.ID).
		With(map[string]any{"label": updated.Label, "permissions": []string(updated.Permissions)}))

	return updated, nil
}
