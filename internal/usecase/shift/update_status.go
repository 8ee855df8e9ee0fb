package shift

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type UpdateStatus struct {
	repo      domain.Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	authority *auth.Authority,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:      repo,
		authority: authority,
		audit:     audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	sess session.Session,
	shiftID uint,
	estado string,
) (*models.Shift, error) {

	if err := uc.authority.Require(ctx, sess, access.PermShift); err != nil {
		return nil, err
	}

	next, err := domain.ParseStatus(estado)
	if err != nil {
		return nil, err
	}

	sh, err := uc.repo.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	previous := sh.Estado

	if err := uc.repo.UpdateShiftStatus(ctx, sh.ID, next); err != nil {
		return nil, err
	}
	sh.Estado = string(next)

	uc.audit.Dispatch(audit.NewEvent(sess, "shift_status_changed", "shift", sh.ID).
		With(map[string]string{"from": previous, "to": sh.Estado}))

	return sh, nil
}
