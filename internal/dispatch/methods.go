package dispatch

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/auditlog"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/backup"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/role"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/settings"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// UseCases reúne tudo que os métodos expostos chamam. Backup e AuditLogs
// são opcionais: nil deixa os métodos de fora.
type UseCases struct {
	Authority *auth.Authority
	Users     UserFinder

	GetUsers       *user.GetUsers
	CreateUser     *user.CreateUser
	UpdateUser     *user.UpdateUser
	DeleteUser     *user.DeleteUser
	ChangePassword *user.ChangePassword

	GetRoles   *role.GetAll
	UpdateRole *role.Update

	CustomerQueries  *customer.Queries
	CustomerCommands *customer.Commands

	Services *catalog.Services

	CreateShift  *shift.CreateShift
	UpdateStatus *shift.UpdateStatus
	Loads        *shift.Loads
	Availability *shift.GetAvailability

	Settings *settings.Settings

	Backup    *backup.Backup
	AuditLogs *auditlog.ListAuditLogs
}

// Register liga cada método ao seu caso de uso.
func Register(d *Dispatcher, uc UseCases) {
	registerAuth(d, uc)
	registerRoles(d, uc)
	registerCustomers(d, uc)
	registerServices(d, uc)
	registerShifts(d, uc)
	registerSettings(d, uc)

	if uc.Backup != nil {
		registerBackup(d, uc)
	}
	if uc.AuditLogs != nil {
		d.Handle("audit.getLogs", typed(func(ctx context.Context, sess session.Session, req auditLogsRequest) (any, error) {
			res, err := uc.AuditLogs.Execute(ctx, auditlog.ListInput{
				Session: sess,
				Action:  req.Action,
				Entity:  req.Entity,
				From:    req.From,
				To:      req.To,
				Page:    req.Page,
				Limit:   req.Limit,
			})
			if err != nil {
				return nil, err
			}
			return pageOf(res.Logs, res.Total, res.Page, res.Limit), nil
		}))
	}
}

// ======================================================
// AUTH / USERS
// ======================================================

func registerAuth(d *Dispatcher, uc UseCases) {
	d.Handle("auth.login", typed(func(ctx context.Context, _ session.Session, req loginRequest) (any, error) {
		res, err := uc.Authority.Login(ctx, req.Usuario, req.Password)
		if err != nil {
			return nil, err
		}
		return dto.LoginDTO{User: dto.FromUser(*res.User), Token: res.Token}, nil
	}))

	d.Handle("auth.logout", typed(func(_ context.Context, _ session.Session, _ struct{}) (any, error) {
		uc.Authority.Logout()
		return nil, nil
	}))

	d.Handle("auth.session", typed(func(ctx context.Context, sess session.Session, _ struct{}) (any, error) {
		if !sess.Authenticated() {
			return dto.SessionDTO{}, nil
		}
		u, err := uc.Users.FindByID(ctx, sess.UserID)
		if httperr.Is(err, httperr.KindNotFound) {
			// sessão de usuário apagado vale como anônima
			return dto.SessionDTO{}, nil
		}
		if err != nil {
			return nil, err
		}
		out := dto.FromUser(*u)
		return dto.SessionDTO{Authenticated: true, User: &out}, nil
	}))

	d.Handle("auth.getUsers", typed(func(ctx context.Context, sess session.Session, _ struct{}) (any, error) {
		list, err := uc.GetUsers.Execute(ctx, sess)
		if err != nil {
			return nil, err
		}
		return dto.FromUsers(list), nil
	}))

	d.Handle("auth.createUser", typed(func(ctx context.Context, sess session.Session, req createUserRequest) (any, error) {
		u, err := uc.CreateUser.Execute(ctx, user.CreateUserInput{
			Session:  sess,
			Nombre:   req.Nombre,
			Apellido: req.Apellido,
			Usuario:  req.Usuario,
			Password: req.Password,
			Level:    req.Level,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromUser(*u), nil
	}))

	d.Handle("auth.updateUser", typed(func(ctx context.Context, sess session.Session, req updateUserRequest) (any, error) {
		u, err := uc.UpdateUser.Execute(ctx, user.UpdateUserInput{
			Session:  sess,
			ID:       req.ID,
			Nombre:   req.Data.Nombre,
			Apellido: req.Data.Apellido,
			Usuario:  req.Data.Usuario,
			Level:    req.Data.Level,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromUser(*u), nil
	}))

	d.Handle("auth.deleteUser", typed(func(ctx context.Context, sess session.Session, req idRequest) (any, error) {
		return nil, uc.DeleteUser.Execute(ctx, sess, req.ID)
	}))

	d.Handle("auth.changePassword", typed(func(ctx context.Context, sess session.Session, req changePasswordRequest) (any, error) {
		return nil, uc.ChangePassword.Execute(ctx, user.ChangePasswordInput{
			Session: sess,
			ID:      req.ID,
			Current: req.Current,
			New:     req.New,
		})
	}))
}

// ======================================================
// ROLES
// ======================================================

func registerRoles(d *Dispatcher, uc UseCases) {
	d.Handle("roles.getAll", typed(func(ctx context.Context, sess session.Session, _ struct{}) (any, error) {
		return uc.GetRoles.Execute(ctx, sess)
	}))

	d.Handle("roles.update", typed(func(ctx context.Context, sess session.Session, req updateRoleRequest) (any, error) {
		return uc.UpdateRole.Execute(ctx, role.UpdateInput{
			Session:     sess,
			ID:          req.ID,
			Label:       req.Label,
			Permissions: req.Permissions,
		})
	}))
}

// ======================================================
// CUSTOMERS
// ======================================================

func registerCustomers(d *Dispatcher, uc UseCases) {
	d.Handle("customers.getPaginated", typed(func(ctx context.Context, sess session.Session, req customerPageRequest) (any, error) {
		page, err := uc.CustomerQueries.GetPaginated(ctx, sess, customer.PageInput{
			Page:   req.Page,
			Limit:  req.Limit,
			Search: req.Search,
		})
		if err != nil {
			return nil, err
		}
		return pageOf(page.Items, page.Total, page.Page, page.Limit), nil
	}))

	d.Handle("customers.getById", typed(func(ctx context.Context, sess session.Session, req idRequest) (any, error) {
		return uc.CustomerQueries.GetByID(ctx, sess, req.ID)
	}))

	d.Handle("customers.findByDocument", typed(func(ctx context.Context, sess session.Session, req documentRequest) (any, error) {
		c, err := uc.CustomerQueries.FindByDocument(ctx, sess, req.Documento)
		if err != nil || c == nil {
			return nil, err
		}
		return c, nil
	}))

	d.Handle("customers.create", typed(func(ctx context.Context, sess session.Session, req customerData) (any, error) {
		return uc.CustomerCommands.Create(ctx, sess, req.toData())
	}))

	d.Handle("customers.update", typed(func(ctx context.Context, sess session.Session, req updateCustomerRequest) (any, error) {
		return uc.CustomerCommands.Update(ctx, sess, req.ID, req.Data.toData())
	}))

	d.Handle("customers.delete", typed(func(ctx context.Context, sess session.Session, req idRequest) (any, error) {
		return nil, uc.CustomerCommands.Delete(ctx, sess, req.ID)
	}))
}

// ======================================================
// SERVICES
// ======================================================

func registerServices(d *Dispatcher, uc UseCases) {
	d.Handle("services.getAll", typed(func(ctx context.Context, sess session.Session, _ struct{}) (any, error) {
		return uc.Services.GetAll(ctx, sess)
	}))

	d.Handle("services.create", typed(func(ctx context.Context, sess session.Session, req serviceNameRequest) (any, error) {
		return uc.Services.Create(ctx, sess, req.Nombre)
	}))

	d.Handle("services.update", typed(func(ctx context.Context, sess session.Session, req updateServiceRequest) (any, error) {
		return uc.Services.Update(ctx, sess, req.ID, req.Nombre)
	}))

	d.Handle("services.toggle", typed(func(ctx context.Context, sess session.Session, req idRequest) (any, error) {
		return uc.Services.Toggle(ctx, sess, req.ID)
	}))

	d.Handle("services.delete", typed(func(ctx context.Context, sess session.Session, req idRequest) (any, error) {
		return nil, uc.Services.Delete(ctx, sess, req.ID)
	}))
}

// ======================================================
// SHIFTS
// ======================================================

func registerShifts(d *Dispatcher, uc UseCases) {
	d.Handle("shift.create", typed(func(ctx context.Context, sess session.Session, req createShiftRequest) (any, error) {
		in := shift.CreateShiftInput{
			Session:    sess,
			Fecha:      req.Fecha,
			Hora:       req.Hora,
			Documento:  req.Documento,
			ServiceIDs: req.Servicios,
		}
		if req.NuevoCliente != nil {
			data := req.NuevoCliente.toData(req.Documento)
			in.NewCustomer = &data
		}

		sh, err := uc.CreateShift.Execute(ctx, in)
		if err != nil {
			return nil, err
		}
		return dto.FromShift(*sh), nil
	}))

	d.Handle("shift.getByDate", typed(func(ctx context.Context, sess session.Session, req dateRequest) (any, error) {
		list, err := uc.Loads.ByDate(ctx, sess, req.Fecha)
		if err != nil {
			return nil, err
		}
		return dto.FromShifts(list), nil
	}))

	d.Handle("shift.getMonthlyLoad", typed(func(ctx context.Context, sess session.Session, req monthRequest) (any, error) {
		return uc.Loads.MonthlyLoad(ctx, sess, req.Year, req.Month)
	}))

	d.Handle("shift.getYearlyLoad", typed(func(ctx context.Context, sess session.Session, req yearRequest) (any, error) {
		return uc.Loads.YearlyLoad(ctx, sess, req.Year)
	}))

	d.Handle("shift.getInitialData", typed(func(ctx context.Context, sess session.Session, req initialDataRequest) (any, error) {
		data, err := uc.Loads.Initial(ctx, sess, req.Date, req.Year, req.Month)
		if err != nil {
			return nil, err
		}
		return dto.InitialDataDTO{
			Shifts:     dto.FromShifts(data.Shifts),
			Load:       data.Load,
			MonthTotal: data.Load.Total(),
		}, nil
	}))

	d.Handle("shift.getAvailability", typed(func(ctx context.Context, sess session.Session, req dateRequest) (any, error) {
		return uc.Availability.Execute(ctx, sess, req.Fecha)
	}))

	d.Handle("shift.updateStatus", typed(func(ctx context.Context, sess session.Session, req updateStatusRequest) (any, error) {
		sh, err := uc.UpdateStatus.Execute(ctx, sess, req.ID, req.Estado)
		if err != nil {
			return nil, err
		}
		return dto.FromShift(*sh), nil
	}))
}

// ======================================================
// SETTINGS / BACKUP
// ======================================================

func registerSettings(d *Dispatcher, uc UseCases) {
	d.Handle("settings.getAll", typed(func(ctx context.Context, _ session.Session, _ struct{}) (any, error) {
		return uc.Settings.GetAll(ctx)
	}))

	d.Handle("settings.setMany", typed(func(ctx context.Context, sess session.Session, req map[string]any) (any, error) {
		return uc.Settings.SetMany(ctx, sess, req)
	}))
}

func registerBackup(d *Dispatcher, uc UseCases) {
	d.Handle("backup.create", typed(func(ctx context.Context, sess session.Session, req backupRequest) (any, error) {
		return uc.Backup.Create(ctx, sess, req.Path)
	}))

	d.Handle("backup.restore", typed(func(ctx context.Context, sess session.Session, req restoreRequest) (any, error) {
		return uc.Backup.Restore(ctx, sess, req.Path)
	}))
}

func pageOf[T any](items []T, total int64, page, limit int) dto.PageDTO[T] {
	return dto.PageDTO[T]{
		Data:       items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: dto.TotalPages(total, limit),
	}
}
