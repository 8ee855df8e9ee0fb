package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/dispatch"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	ucAuditLog "github.com/BruksfildServices01/salon-scheduler/internal/usecase/auditlog"
	ucBackup "github.com/BruksfildServices01/salon-scheduler/internal/usecase/backup"
	ucCatalog "github.com/BruksfildServices01/salon-scheduler/internal/usecase/catalog"
	ucCustomer "github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
	ucRole "github.com/BruksfildServices01/salon-scheduler/internal/usecase/role"
	ucSettings "github.com/BruksfildServices01/salon-scheduler/internal/usecase/settings"
	ucShift "github.com/BruksfildServices01/salon-scheduler/internal/usecase/shift"
	ucUser "github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

// App guarda o que o processo precisa encerrar ou consultar depois de
// montar as rotas.
type App struct {
	Authority  *auth.Authority
	Audit      *audit.Dispatcher
	Dispatcher *dispatch.Dispatcher
}

// Close esvazia a fila de auditoria.
func (a *App) Close() {
	a.Audit.Close()
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log logrus.FieldLogger) *App {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.UIOrigin))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	roleRepo := infraRepo.NewRoleGormRepository(db)

	authority := auth.NewAuthority(
		userRepo,
		roleRepo,
		session.NewManager(),
		auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL),
		log,
	)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	backupOpts := ucBackup.Options{}
	if !cfg.UsesPostgres() {
		backupOpts.DBPath = cfg.DBPath
	}

	var uploader ucBackup.Uploader
	if s3 := storage.NewS3Uploader(cfg); s3 != nil {
		uploader = s3
	}

	app := &App{
		Authority:  authority,
		Audit:      auditDispatcher,
		Dispatcher: BuildDispatcher(db, authority, auditDispatcher, backupOpts, uploader, log),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(db)
	ipcHandler := handlers.NewIPCHandler(app.Dispatcher)

	// ======================================================
	// 🌐 ROTAS
	// ======================================================
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	ipc := r.Group("/ipc")
	ipc.Use(middleware.SessionMiddleware(authority))
	{
		ipc.GET("", ipcHandler.Methods)
		ipc.POST("/:method", ipcHandler.Call)
	}

	r.NoRoute(func(c *gin.Context) {
		httperr.Write(c, http.StatusNotFound, "unknown_method")
	})

	return app
}

// BuildDispatcher monta os casos de uso e registra cada método exposto.
func BuildDispatcher(
	db *gorm.DB,
	authority *auth.Authority,
	auditDispatcher *audit.Dispatcher,
	backupOpts ucBackup.Options,
	uploader ucBackup.Uploader,
	log logrus.FieldLogger,
) *dispatch.Dispatcher {

	userRepo := infraRepo.NewUserGormRepository(db)
	roleRepo := infraRepo.NewRoleGormRepository(db)
	customerRepo := infraRepo.NewCustomerGormRepository(db)
	serviceRepo := infraRepo.NewServiceGormRepository(db)
	shiftRepo := infraRepo.NewShiftGormRepository(db)
	settingRepo := infraRepo.NewSettingGormRepository(db)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(db)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	uc := dispatch.UseCases{
		Authority: authority,
		Users:     userRepo,

		GetUsers:       ucUser.NewGetUsers(userRepo, authority),
		CreateUser:     ucUser.NewCreateUser(userRepo, roleRepo, authority, auditDispatcher),
		UpdateUser:     ucUser.NewUpdateUser(userRepo, roleRepo, authority, auditDispatcher),
		DeleteUser:     ucUser.NewDeleteUser(userRepo, authority, auditDispatcher),
		ChangePassword: ucUser.NewChangePassword(userRepo, authority, auditDispatcher),

		GetRoles:   ucRole.NewGetAll(roleRepo, authority),
		UpdateRole: ucRole.NewUpdate(roleRepo, authority, auditDispatcher),

		CustomerQueries:  ucCustomer.NewQueries(customerRepo, authority),
		CustomerCommands: ucCustomer.NewCommands(customerRepo, authority, auditDispatcher),

		Services: ucCatalog.NewServices(serviceRepo, authority, auditDispatcher),

		CreateShift:  ucShift.NewCreateShift(shiftRepo, authority, auditDispatcher),
		UpdateStatus: ucShift.NewUpdateStatus(shiftRepo, authority, auditDispatcher),
		Loads:        ucShift.NewLoads(shiftRepo, authority),
		Availability: ucShift.NewGetAvailability(shiftRepo, settingRepo, authority),

		Settings: ucSettings.NewSettings(settingRepo, authority, auditDispatcher),

		Backup:    ucBackup.NewBackup(db, backupOpts, uploader, authority, auditDispatcher, log),
		AuditLogs: ucAuditLog.NewListAuditLogs(auditLogRepo, authority),
	}

	d := dispatch.New(log)
	dispatch.Register(d, uc)
	return d
}
