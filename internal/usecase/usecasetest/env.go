// Package usecasetest monta banco, repositórios e autoridade para os
// testes dos casos de uso.
package usecasetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

const UserPassword = "secret"

type Env struct {
	DB        *gorm.DB
	Authority *auth.Authority

	Users     *repository.UserGormRepository
	Roles     *repository.RoleGormRepository
	Customers *repository.CustomerGormRepository
	Services  *repository.ServiceGormRepository
	Shifts    *repository.ShiftGormRepository
	Settings  *repository.SettingGormRepository

	// Admin é a sessão do usuário semeado (id 1, nível 1).
	Admin session.Session
}

func New(t testing.TB) *Env {
	t.Helper()

	db := dbtest.Migrated(t)
	users := repository.NewUserGormRepository(db)
	roles := repository.NewRoleGormRepository(db)

	return &Env{
		DB: db,
		Authority: auth.NewAuthority(
			users,
			roles,
			session.NewManager(),
			auth.NewTokens("test-secret", time.Hour),
			logging.Discard(),
		),
		Users:     users,
		Roles:     roles,
		Customers: repository.NewCustomerGormRepository(db),
		Services:  repository.NewServiceGormRepository(db),
		Shifts:    repository.NewShiftGormRepository(db),
		Settings:  repository.NewSettingGormRepository(db),
		Admin:     session.Session{ID: "admin", UserID: 1, Level: 1},
	}
}

// SetRolePermissions sobrescreve a lista do papel (criando-o se preciso).
func (e *Env) SetRolePermissions(t testing.TB, level uint, perms ...string) {
	t.Helper()

	role := models.Role{ID: level, Label: "Papel", Permissions: models.Permissions(perms)}
	require.NoError(t, e.DB.Save(&role).Error)
}

// AddUser cria um usuário com a senha UserPassword e devolve uma sessão
// para ele.
func (e *Env) AddUser(t testing.TB, usuario string, level int) session.Session {
	t.Helper()

	hash, err := auth.HashPassword(UserPassword)
	require.NoError(t, err)

	u := models.User{
		Nombre:   "Eva",
		Apellido: "Ruiz",
		Usuario:  usuario,
		Password: hash,
		Level:    level,
	}
	require.NoError(t, e.DB.Create(&u).Error)

	return session.Session{ID: usuario, UserID: u.ID, Level: level}
}
