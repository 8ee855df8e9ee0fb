package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/usecasetest"
)

func TestCreateListToggle(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	svc := catalog.NewServices(env.Services, env.Authority, nil)

	created, err := svc.Create(ctx, env.Admin, "Corte")
	require.NoError(t, err)

	all, err := svc.GetAll(ctx, env.Admin)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Corte", all[0].Nombre)
	assert.Equal(t, 1, all[0].Activo)

	toggled, err := svc.Toggle(ctx, env.Admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, toggled.Activo)

	toggled, err = svc.Toggle(ctx, env.Admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, toggled.Activo)

	stored, err := env.Services.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Activo)

	_, err = svc.Toggle(ctx, env.Admin, 404)
	assert.True(t, httperr.Is(err, httperr.KindNotFound))
}

func TestCaseInsensitiveUniqueness(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	svc := catalog.NewServices(env.Services, env.Authority, nil)

	corte, err := svc.Create(ctx, env.Admin, "Corte")
	require.NoError(t, err)

	_, err = svc.Create(ctx, env.Admin, "CORTE")
	assert.True(t, httperr.Is(err, httperr.KindDuplicateKey))
	assert.True(t, httperr.IsBusiness(err, "service_name_taken"))

	tintura, err := svc.Create(ctx, env.Admin, "Tintura")
	require.NoError(t, err)

	_, err = svc.Update(ctx, env.Admin, tintura.ID, "corte")
	assert.True(t, httperr.Is(err, httperr.KindDuplicateKey))

	// renomear mudando só a caixa do próprio nome é permitido
	renamed, err := svc.Update(ctx, env.Admin, corte.ID, "CORTE")
	require.NoError(t, err)
	assert.Equal(t, "CORTE", renamed.Nombre)
}

func TestCaseInsensitiveUniqueness_AccentedCapitals(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	svc := catalog.NewServices(env.Services, env.Authority, nil)

	_, err := svc.Create(ctx, env.Admin, "DEPILACIÓN")
	require.NoError(t, err)

	_, err = svc.Create(ctx, env.Admin, "depilación")
	assert.True(t, httperr.Is(err, httperr.KindDuplicateKey))
	assert.True(t, httperr.IsBusiness(err, "service_name_taken"))

	all, err := svc.GetAll(ctx, env.Admin)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "DEPILACIÓN", all[0].Nombre)
}

func TestDeleteAndPermissions(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	svc := catalog.NewServices(env.Services, env.Authority, nil)

	env.SetRolePermissions(t, 2, "shift")
	employee := env.AddUser(t, "eva", 2)

	_, err := svc.Create(ctx, employee, "Corte")
	assert.True(t, httperr.IsBusiness(err, "permission_denied"))

	created, err := svc.Create(ctx, env.Admin, "Corte")
	require.NoError(t, err)

	assert.True(t, httperr.IsBusiness(svc.Delete(ctx, employee, created.ID), "permission_denied"))
	require.NoError(t, svc.Delete(ctx, env.Admin, created.ID))
	assert.True(t, httperr.Is(svc.Delete(ctx, env.Admin, created.ID), httperr.KindNotFound))

	_, err = svc.Create(ctx, env.Admin, "   ")
	assert.True(t, httperr.Is(err, httperr.KindValidation))
}
