package shift

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/setting"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SettingsReader interface {
	All(ctx context.Context) (map[string]string, error)
}

// GetAvailability devolve a grade do dia (horário de abertura,
// fechamento e intervalo das configurações) com a ocupação de cada
// horário. Não impede reservas fora da grade.
type GetAvailability struct {
	repo      domain.Repository
	settings  SettingsReader
	authority *auth.Authority
}

func NewGetAvailability(
	repo domain.Repository,
	settings SettingsReader,
	authority *auth.Authority,
) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		settings:  settings,
		authority: authority,
	}
}

func (uc *GetAvailability) Execute(ctx context.Context, sess session.Session, fecha string) ([]domain.Slot, error) {
	if err := uc.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	if !timezone.IsDate(fecha) {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Grade a partir das configurações
	// --------------------------------------------------
	values := setting.Defaults()
	stored, err := uc.settings.All(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range stored {
		values[k] = v
	}

	interval, err := strconv.Atoi(values[setting.KeyInterval])
	if err != nil {
		return nil, httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_setting_value", Err: err}
	}

	grid, err := domain.DaySlots(values[setting.KeyOpeningTime], values[setting.KeyClosingTime], interval)
	if err != nil {
		return nil, httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_setting_value", Err: err}
	}

	// --------------------------------------------------
	// Ocupação
	// --------------------------------------------------
	shifts, err := uc.repo.ListShiftsByDate(ctx, fecha)
	if err != nil {
		return nil, err
	}

	times := make([]domain.ShiftTime, 0, len(shifts))
	for _, s := range shifts {
		times = append(times, domain.ShiftTime{Hora: s.Hora, Status: domain.Status(s.Estado)})
	}

	return domain.FillSlots(grid, times), nil
}
