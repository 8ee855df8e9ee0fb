package settings

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/setting"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	UpsertMany(ctx context.Context, values map[string]string) error
}

type Settings struct {
	repo      Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewSettings(repo Repository, authority *auth.Authority, audit *audit.Dispatcher) *Settings {
	return &Settings{repo: repo, authority: authority, audit: audit}
}

// GetAll não exige sessão: a tela de login já usa horário e nome do salão.
// Chaves conhecidas ausentes no banco voltam com o valor padrão.
func (s *Settings) GetAll(ctx context.Context) (map[string]string, error) {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := setting.Defaults()
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// SetMany converte cada valor para texto e grava tudo numa transação.
func (s *Settings) SetMany(ctx context.Context, sess session.Session, values map[string]any) (map[string]string, error) {
	if err := s.authority.Require(ctx, sess, access.PermSettings); err != nil {
		return nil, err
	}

	coerced := make(map[string]string, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" {
			return nil, httperr.Validation("invalid_setting_value")
		}

		str, err := setting.Coerce(v)
		if err != nil {
			return nil, httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_setting_value", Err: err}
		}
		coerced[key] = str
	}

	if err := s.repo.UpsertMany(ctx, coerced); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(coerced))
	for k := range coerced {
		keys = append(keys, k)
	}
	s.audit.Dispatch(audit.NewEvent(sess, "settings_updated", "setting", 0).With(keys))

	return s.GetAll(ctx)
}
