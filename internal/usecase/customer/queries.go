package customer

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type PageInput struct {
	Page   int
	Limit  int
	Search string
}

type Page struct {
	Items []models.Customer
	Total int64
	Page  int
	Limit int
}

type Queries struct {
	repo      Repository
	authority *auth.Authority
}

func NewQueries(repo Repository, authority *auth.Authority) *Queries {
	return &Queries{repo: repo, authority: authority}
}

func (q *Queries) GetPaginated(ctx context.Context, sess session.Session, in PageInput) (*Page, error) {
	if err := q.authority.RequireSession(sess); err != nil {
		return nil, err
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = DefaultLimit
	}
	if in.Limit > MaxLimit {
		in.Limit = MaxLimit
	}

	items, total, err := q.repo.Paginate(ctx, in.Search, in.Page, in.Limit)
	if err != nil {
		return nil, err
	}

	return &Page{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (q *Queries) GetByID(ctx context.Context, sess session.Session, id uint) (*models.Customer, error) {
	if err := q.authority.RequireSession(sess); err != nil {
		return nil, err
	}
	return q.repo.FindByID(ctx, id)
}

// FindByDocument é usado na reserva para decidir entre cliente existente
// e cliente novo: ausência devolve (nil, nil), não erro.
func (q *Queries) FindByDocument(ctx context.Context, sess session.Session, documento string) (*models.Customer, error) {
	if err := q.authority.RequireSession(sess); err != nil {
		return nil, err
	}

	c, err := q.repo.FindByDocumento(ctx, strings.TrimSpace(documento))
	if err != nil {
		if httperr.Is(err, httperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}
