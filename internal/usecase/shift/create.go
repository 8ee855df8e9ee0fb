package shift

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
)

// ======================================================
// INPUT
// ======================================================

type CreateShiftInput struct {
	Session session.Session

	Fecha string
	Hora  string

	// Documento identifica o cliente. NewCustomer só é usado quando o
	// documento ainda não está cadastrado.
	Documento   string
	NewCustomer *customer.Data

	ServiceIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateShift struct {
	repo      domain.Repository
	authority *auth.Authority
	audit     *audit.Dispatcher
}

func NewCreateShift(
	repo domain.Repository,
	authority *auth.Authority,
	audit *audit.Dispatcher,
) *CreateShift {
	return &CreateShift{
		repo:      repo,
		authority: authority,
		audit:     audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateShift) Execute(
	ctx context.Context,
	in CreateShiftInput,
) (*models.Shift, error) {

	// --------------------------------------------------
	// 1️⃣ Permissão
	// --------------------------------------------------
	if err := uc.authority.Require(ctx, in.Session, access.PermShift); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora / serviços
	// --------------------------------------------------
	if !timezone.IsDate(in.Fecha) || !timezone.IsTime(in.Hora) {
		return nil, httperr.Validation("invalid_date_or_time")
	}

	serviceIDs := uniqueIDs(in.ServiceIDs)
	if len(serviceIDs) == 0 {
		return nil, httperr.Validation("services_required")
	}

	documento := strings.TrimSpace(in.Documento)
	if documento == "" {
		return nil, httperr.Validation("customer_required")
	}

	var (
		sh              *models.Shift
		createdCustomer *models.Customer
	)

	// --------------------------------------------------
	// 3️⃣ Cliente + turno na mesma transação
	// --------------------------------------------------
	err := uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		client, err := tx.FindCustomerByDocumento(ctx, documento)
		switch {
		case err == nil:
			// cliente existente
		case httperr.Is(err, httperr.KindNotFound):
			if in.NewCustomer == nil {
				return httperr.Validation("customer_required")
			}
			data := *in.NewCustomer
			data.Documento = documento

			client = data.Build()
			if err := tx.CreateCustomer(ctx, client); err != nil {
				return err
			}
			createdCustomer = client
		default:
			return err
		}

		services, err := resolveServices(ctx, tx, serviceIDs)
		if err != nil {
			return err
		}

		sh = &models.Shift{
			Fecha:     in.Fecha,
			Hora:      in.Hora,
			Cliente:   client.FullName(),
			ClienteID: &client.ID,
			Estado:    string(domain.InitialStatus()),
			Services:  services,
		}
		return tx.CreateShift(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	if createdCustomer != nil {
		uc.audit.Dispatch(audit.NewEvent(in.Session, "customer_created", "customer", createdCustomer.ID))
	}
	uc.audit.Dispatch(audit.NewEvent(in.Session, "shift_created", "shift", sh.ID).
		With(map[string]string{"fecha": sh.Fecha, "hora": sh.Hora}))

	return sh, nil
}

// resolveServices exige que todos existam e estejam ativos, mantendo a
// ordem escolhida na reserva.
func resolveServices(ctx context.Context, tx domain.Repository, ids []uint) ([]models.ShiftService, error) {
	found, err := tx.FindServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]models.ShiftService, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.NotFound("service_not_found")
		}
		if s.Activo != 1 {
			return nil, httperr.Validation("service_inactive")
		}

		serviceID := s.ID
		out = append(out, models.ShiftService{ServiceID: &serviceID, Nombre: s.Nombre})
	}
	return out, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
