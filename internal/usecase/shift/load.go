package shift

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Loads responde às consultas do calendário. Sem cache: cada chamada
// relê o banco.
type Loads struct {
	repo      domain.Repository
	authority *auth.Authority
}

func NewLoads(repo domain.Repository, authority *auth.Authority) *Loads {
	return &Loads{repo: repo, authority: authority}
}

type InitialData struct {
	Shifts []models.Shift
	Load   domain.Load
}

// ByDate devolve todos os turnos do dia, de qualquer estado, por hora.
func (l *Loads) ByDate(ctx context.Context, sess session.Session, fecha string) ([]models.Shift, error) {
	if err := l.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	if !timezone.IsDate(fecha) {
		return nil, httperr.Validation("invalid_date_or_time")
	}
	return l.repo.ListShiftsByDate(ctx, fecha)
}

func (l *Loads) MonthlyLoad(ctx context.Context, sess session.Session, year, month int) (domain.Load, error) {
	if err := l.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	if !validYear(year) || month < 1 || month > 12 {
		return nil, httperr.Validation("invalid_year_or_month")
	}

	from, to := timezone.MonthRange(year, month)
	return l.repo.LoadBetween(ctx, from, to)
}

func (l *Loads) YearlyLoad(ctx context.Context, sess session.Session, year int) (domain.Load, error) {
	if err := l.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	if !validYear(year) {
		return nil, httperr.Validation("invalid_year_or_month")
	}

	from, to := timezone.YearRange(year)
	return l.repo.LoadBetween(ctx, from, to)
}

// Initial junta o dia selecionado e a carga do mês exibido, usados na
// abertura da tela de agenda.
func (l *Loads) Initial(ctx context.Context, sess session.Session, fecha string, year, month int) (*InitialData, error) {
	shifts, err := l.ByDate(ctx, sess, fecha)
	if err != nil {
		return nil, err
	}

	load, err := l.MonthlyLoad(ctx, sess, year, month)
	if err != nil {
		return nil, err
	}

	return &InitialData{Shifts: shifts, Load: load}, nil
}

func validYear(year int) bool {
	return year >= 1900 && year < 3000
}
