package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/usecasetest"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUser(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	uc := user.NewCreateUser(env.Users, env.Roles, env.Authority, nil)

	u, err := uc.Execute(ctx, user.CreateUserInput{
		Session:  env.Admin,
		Nombre:   "  mARÍA ",
		Apellido: "lÓPEZ",
		Usuario:  "maria",
		Password: "clave",
		Level:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, "María", u.Nombre)
	assert.Equal(t, "López", u.Apellido)
	assert.True(t, auth.VerifyPassword(u.Password, "clave"))

	_, err = uc.Execute(ctx, user.CreateUserInput{
		Session: env.Admin, Nombre: "x", Apellido: "y", Usuario: "maria", Password: "clave", Level: 2,
	})
	assert.True(t, httperr.Is(err, httperr.KindDuplicateKey))

	_, err = uc.Execute(ctx, user.CreateUserInput{
		Session: env.Admin, Nombre: "x", Apellido: "y", Usuario: "otro", Password: "clave", Level: 7,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_level"))

	_, err = uc.Execute(ctx, user.CreateUserInput{
		Session: env.Admin, Nombre: "x", Apellido: "y", Usuario: "otro", Password: "abc", Level: 2,
	})
	assert.True(t, httperr.IsBusiness(err, "password_too_short"))
}

func TestCreateUser_RequiresPermission(t *testing.T) {
	env := usecasetest.New(t)
	employee := env.AddUser(t, "eva", 2)

	_, err := user.NewCreateUser(env.Users, env.Roles, env.Authority, nil).Execute(context.Background(), user.CreateUserInput{
		Session: employee, Nombre: "x", Apellido: "y", Usuario: "otro", Password: "clave", Level: 2,
	})
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	var count int64
	require.NoError(t, env.DB.Table("users").Where("usuario = ?", "otro").Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateUser_SelfEdit(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	employee := env.AddUser(t, "eva", 2)
	uc := user.NewUpdateUser(env.Users, env.Roles, env.Authority, nil)

	// próprio cadastro sem a permissão de gestão
	u, err := uc.Execute(ctx, user.UpdateUserInput{
		Session: employee,
		ID:      employee.UserID,
		Nombre:  ptr("EVELYN"),
		Usuario: ptr("evelyn"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Evelyn", u.Nombre)
	assert.Equal(t, "evelyn", u.Usuario)

	// mudar o próprio nível exige a permissão
	_, err = uc.Execute(ctx, user.UpdateUserInput{Session: employee, ID: employee.UserID, Level: ptr(1)})
	assert.True(t, httperr.IsBusiness(err, "permission_denied"))

	// mesmo nível não conta como mudança
	_, err = uc.Execute(ctx, user.UpdateUserInput{Session: employee, ID: employee.UserID, Level: ptr(2)})
	assert.NoError(t, err)

	// outro usuário exige a permissão
	_, err = uc.Execute(ctx, user.UpdateUserInput{Session: employee, ID: 1, Nombre: ptr("x")})
	assert.True(t, httperr.IsBusiness(err, "permission_denied"))
}

func TestUpdateUser_AdminChangesLevel(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	employee := env.AddUser(t, "eva", 2)
	uc := user.NewUpdateUser(env.Users, env.Roles, env.Authority, nil)

	u, err := uc.Execute(ctx, user.UpdateUserInput{Session: env.Admin, ID: employee.UserID, Level: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, u.Level)

	_, err = uc.Execute(ctx, user.UpdateUserInput{Session: env.Admin, ID: employee.UserID, Level: ptr(5)})
	assert.True(t, httperr.IsBusiness(err, "invalid_level"))

	_, err = uc.Execute(ctx, user.UpdateUserInput{Session: env.Admin, ID: 404, Nombre: ptr("x")})
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
}

func TestDeleteUser_SelfIsRejected(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	uc := user.NewDeleteUser(env.Users, env.Authority, nil)

	err := uc.Execute(ctx, env.Admin, env.Admin.UserID)
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))
	assert.True(t, httperr.IsBusiness(err, "self_delete_forbidden"))

	employee := env.AddUser(t, "eva", 2)
	err = uc.Execute(ctx, employee, employee.UserID)
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	_, err = env.Users.FindByID(ctx, env.Admin.UserID)
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	uc := user.NewDeleteUser(env.Users, env.Authority, nil)
	employee := env.AddUser(t, "eva", 2)

	err := uc.Execute(ctx, employee, env.Admin.UserID)
	assert.True(t, httperr.IsBusiness(err, "permission_denied"))

	require.NoError(t, uc.Execute(ctx, env.Admin, employee.UserID))
	assert.True(t, httperr.Is(uc.Execute(ctx, env.Admin, employee.UserID), httperr.KindNotFound))
}

func TestChangePassword(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	uc := user.NewChangePassword(env.Users, env.Authority, nil)
	employee := env.AddUser(t, "eva", 2)

	err := uc.Execute(ctx, user.ChangePasswordInput{Session: employee, ID: employee.UserID, Current: "wrong", New: "nueva"})
	assert.True(t, httperr.IsBusiness(err, "current_password_wrong"))

	require.NoError(t, uc.Execute(ctx, user.ChangePasswordInput{
		Session: employee, ID: employee.UserID, Current: usecasetest.UserPassword, New: "nueva",
	}))

	_, err = env.Authority.Login(ctx, "eva", "nueva")
	require.NoError(t, err)

	// administrador troca a senha de outro sem saber a atual
	require.NoError(t, uc.Execute(ctx, user.ChangePasswordInput{Session: env.Admin, ID: employee.UserID, New: "otra1"}))

	err = uc.Execute(ctx, user.ChangePasswordInput{Session: employee, ID: env.Admin.UserID, New: "hack"})
	assert.True(t, httperr.IsBusiness(err, "permission_denied"))
}

func TestGetUsers(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	uc := user.NewGetUsers(env.Users, env.Authority)
	employee := env.AddUser(t, "eva", 2)

	users, err := uc.Execute(ctx, env.Admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = uc.Execute(ctx, employee)
	assert.True(t, httperr.Is(err, httperr.KindUnauthorized))

	env.SetRolePermissions(t, 2, "perfil_usuarios")
	_, err = uc.Execute(ctx, employee)
	assert.NoError(t, err)
}
