package customer

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type Data struct {
	Documento string
	Nombre    string
	Apellido  string
	Telefono  *string
	Email     *string
}

// Build aplica as normalizações de escrita e monta o registro.
func (d Data) Build() *models.Customer {
	return &models.Customer{
		Documento: strings.TrimSpace(d.Documento),
		Nombre:    validators.NormalizeName(d.Nombre),
		Apellido:  validators.NormalizeName(d.Apellido),
		Telefono:  validators.NormalizeOptional(d.Telefono),
		Email:     validators.NormalizeEmail(d.Email),
	}
}

type Commands struct {
	repo      Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewCommands(repo Repository, authority *auth.Authority, audit *audit.Dispatcher) *Commands {
	return &Commands{repo: repo, authority: authority, audit: audit}
}

func (c *Commands) Create(ctx context.Context, sess session.Session, in Data) (*models.Customer, error) {
	if err := c.authority.Require(ctx, sess, access.PermCustomers); err != nil {
		return nil, err
	}

	row := in.Build()
	if err := c.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	c.audit.Dispatch(audit.NewEvent(sess, "customer_created", "customer", row.ID))
	return row, nil
}

func (c *Commands) Update(ctx context.Context, sess session.Session, id uint, in Data) (*models.Customer, error) {
	if err := c.authority.Require(ctx, sess, access.PermCustomers); err != nil {
		return nil, err
	}

	row := in.Build()
	if err := c.repo.Update(ctx, id, map[string]any{
		"documento": row.Documento,
		"nombre":    row.Nombre,
		"apellido":  row.Apellido,
		"telefono":  row.Telefono,
		"email":     row.Email,
	}); err != nil {
		return nil, err
	}

	updated, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.audit.Dispatch(audit.NewEvent(sess, "customer_updated", "customer", id))
	return updated, nil
}

// Delete mantém os turnos do cliente (só a referência é desfeita).
func (c *Commands) Delete(ctx context.Context, sess session.Session, id uint) error {
	if err := c.authority.Require(ctx, sess, access.PermCustomers); err != nil {
		return err
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}

	c.audit.Dispatch(audit.NewEvent(sess, "customer_deleted", "customer", id))
	return nil
}
