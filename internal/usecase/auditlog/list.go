package auditlog

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Repository interface {
	List(ctx context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error)
}

type ListInput struct {
	Session session.Session

	Action string
	Entity string
	From   string
	To     string

	Page  int
	Limit int
}

type ListResult struct {
	Logs  []models.AuditLog
	Total int64
	Page  int
	Limit int
}

// ListAuditLogs mostra o histórico de alterações; restrito a quem
// gerencia usuários.
type ListAuditLogs struct {
	repo      Repository
	authority *auth.Authority
}

func NewListAuditLogs(repo Repository, authority *auth.Authority) *ListAuditLogs {
	return &ListAuditLogs{repo: repo, authority: authority}
}

func (uc *ListAuditLogs) Execute(ctx context.Context, in ListInput) (*ListResult, error) {
	if err := uc.authority.Require(ctx, in.Session, access.PermUsers); err != nil {
		return nil, err
	}

	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > maxLimit {
		in.Limit = defaultLimit
	}

	f := repository.AuditLogFilter{
		Action: in.Action,
		Entity: in.Entity,
		Page:   in.Page,
		Limit:  in.Limit,
	}

	var err error
	if f.From, err = parseOptionalDate(in.From); err != nil {
		return nil, err
	}
	if f.To, err = parseOptionalDate(in.To); err != nil {
		return nil, err
	}

	logs, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ListResult{Logs: logs, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

// datas do filtro são dias locais
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(timezone.DateLayout, s, timezone.Now().Location())
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date_or_time")
	}
	return t, nil
}
