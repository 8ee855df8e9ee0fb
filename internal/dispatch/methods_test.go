package dispatch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/dispatch"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/backup"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/usecasetest"
)

type harness struct {
	env *usecasetest.Env
	d   *dispatch.Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	env := usecasetest.New(t)
	d := routes.BuildDispatcher(env.DB, env.Authority, nil, backup.Options{}, nil, logging.Discard())
	return &harness{env: env, d: d}
}

func (h *harness) call(t *testing.T, sess session.Session, method string, payload any) (int, httpresp.Envelope) {
	t.Helper()

	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = b
	}
	return h.d.Dispatch(context.Background(), sess, method, raw)
}

// decode reinterpreta env.Data no tipo que a interface receberia.
func decode[T any](t *testing.T, env httpresp.Envelope) T {
	t.Helper()

	require.True(t, env.Success, "unexpected failure: %+v", env.Error)

	var out T
	b, err := json.Marshal(env.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

type idOnly struct {
	ID uint `json:"id"`
}

func TestRegister_ExposesEveryMethod(t *testing.T) {
	h := newHarness(t)

	for _, m := range []string{
		"auth.login", "auth.logout", "auth.session", "auth.getUsers", "auth.createUser",
		"auth.updateUser", "auth.deleteUser", "auth.changePassword",
		"roles.getAll", "roles.update",
		"customers.getPaginated", "customers.getById", "customers.create",
		"customers.update", "customers.delete", "customers.findByDocument",
		"services.getAll", "services.create", "services.update", "services.toggle", "services.delete",
		"shift.create", "shift.getByDate", "shift.getMonthlyLoad", "shift.getYearlyLoad",
		"shift.getInitialData", "shift.getAvailability", "shift.updateStatus",
		"settings.getAll", "settings.setMany",
		"backup.create", "backup.restore",
		"audit.getLogs",
	} {
		assert.Contains(t, h.d.Methods(), m)
	}
}

func TestLogin_CollapsesFailureReasons(t *testing.T) {
	h := newHarness(t)

	status, unknown := h.call(t, session.Anonymous, "auth.login", map[string]string{
		"usuario": "ghost", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, wrong := h.call(t, session.Anonymous, "auth.login", map[string]string{
		"usuario": dbtest.AdminUsuario, "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	require.NotNil(t, unknown.Error)
	require.NotNil(t, wrong.Error)
	assert.Equal(t, *unknown.Error, *wrong.Error)
	assert.Equal(t, httperr.CodeInvalidLogin, wrong.Error.Code)
}

func TestLogin_SessionAndLogout(t *testing.T) {
	h := newHarness(t)

	status, env := h.call(t, session.Anonymous, "auth.login", map[string]string{
		"usuario": dbtest.AdminUsuario, "password": dbtest.AdminPassword,
	})
	require.Equal(t, http.StatusOK, status)

	login := decode[dto.LoginDTO](t, env)
	assert.Equal(t, dbtest.AdminUsuario, login.User.Usuario)
	require.NotEmpty(t, login.Token)

	sess := h.env.Authority.ResolveToken(login.Token)
	require.True(t, sess.Authenticated())

	_, env = h.call(t, sess, "auth.session", nil)
	current := decode[dto.SessionDTO](t, env)
	assert.True(t, current.Authenticated)
	require.NotNil(t, current.User)
	assert.Equal(t, 1, current.User.Level)

	_, env = h.call(t, sess, "auth.logout", nil)
	assert.True(t, env.Success)
	assert.False(t, h.env.Authority.ResolveToken(login.Token).Authenticated())

	_, env = h.call(t, session.Anonymous, "auth.session", nil)
	assert.False(t, decode[dto.SessionDTO](t, env).Authenticated)
}

func TestLogin_MalformedPayload(t *testing.T) {
	h := newHarness(t)

	status, env := h.d.Dispatch(context.Background(), session.Anonymous, "auth.login", json.RawMessage(`{"usuario":`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", env.Error.Code)

	status, env = h.call(t, session.Anonymous, "auth.login", map[string]string{"usuario": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestUsers_SelfDeleteRejected(t *testing.T) {
	h := newHarness(t)

	status, env := h.call(t, h.env.Admin, "auth.deleteUser", map[string]uint{"id": h.env.Admin.UserID})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "self_delete_forbidden", env.Error.Code)
}

func TestUsers_CreateHidesPassword(t *testing.T) {
	h := newHarness(t)

	status, env := h.call(t, h.env.Admin, "auth.createUser", map[string]any{
		"nombre": "maría", "apellido": "LÓPEZ", "usuario": "maria", "password": "1234", "level": 2,
	})
	require.Equal(t, http.StatusOK, status)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	u := decode[dto.UserDTO](t, env)
	assert.Equal(t, "María", u.Nombre)
	assert.Equal(t, "López", u.Apellido)

	status, env = h.call(t, h.env.Admin, "auth.createUser", map[string]any{
		"nombre": "x", "apellido": "y", "usuario": "maria", "password": "1234", "level": 2,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "username_taken", env.Error.Code)

	status, env = h.call(t, h.env.Admin, "auth.createUser", map[string]any{
		"nombre": "x", "apellido": "y", "usuario": "otro", "password": "12", "level": 2,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "password_too_short", env.Error.Code)
}

func TestServices_ToggleRoundTrip(t *testing.T) {
	h := newHarness(t)

	_, env := h.call(t, h.env.Admin, "services.create", map[string]string{"nombre": "Corte"})
	corte := decode[idOnly](t, env)

	type svc struct {
		Nombre string `json:"nombre"`
		Activo int    `json:"activo"`
	}

	_, env = h.call(t, h.env.Admin, "services.getAll", nil)
	list := decode[[]svc](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, svc{Nombre: "Corte", Activo: 1}, list[0])

	_, env = h.call(t, h.env.Admin, "services.toggle", map[string]uint{"id": corte.ID})
	assert.Equal(t, 0, decode[svc](t, env).Activo)

	_, env = h.call(t, h.env.Admin, "services.toggle", map[string]uint{"id": corte.ID})
	assert.Equal(t, 1, decode[svc](t, env).Activo)

	status, env := h.call(t, h.env.Admin, "services.create", map[string]string{"nombre": "CORTE"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "service_name_taken", env.Error.Code)

	status, env = h.call(t, h.env.Admin, "services.toggle", map[string]uint{"id": 999})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "service_not_found", env.Error.Code)
}

func TestServices_AnonymousRejected(t *testing.T) {
	h := newHarness(t)

	status, env := h.call(t, session.Anonymous, "services.create", map[string]string{"nombre": "Corte"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestShifts_BookingFlow(t *testing.T) {
	h := newHarness(t)
	admin := h.env.Admin

	_, env := h.call(t, admin, "services.create", map[string]string{"nombre": "Corte"})
	corte := decode[idOnly](t, env)
	_, env = h.call(t, admin, "services.create", map[string]string{"nombre": "Color"})
	color := decode[idOnly](t, env)

	// documento novo sem dados do cliente
	status, env := h.call(t, admin, "shift.create", map[string]any{
		"fecha": "2025-06-10", "hora": "10:00", "documento": "4.123.456-7",
		"servicios": []uint{corte.ID},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "customer_required", env.Error.Code)

	status, env = h.call(t, admin, "shift.create", map[string]any{
		"fecha": "2025-06-10", "hora": "10:00", "documento": "4.123.456-7",
		"servicios": []uint{corte.ID, color.ID},
		"nuevo_cliente": map[string]string{
			"nombre": "ana", "apellido": "pérez", "email": "ANA@MAIL.COM",
		},
	})
	require.Equal(t, http.StatusOK, status)
	first := decode[dto.ShiftListDTO](t, env)
	assert.Equal(t, "Ana Pérez", first.Cliente)
	assert.Equal(t, "Corte, Color", first.Servicios)
	assert.Equal(t, "pending", first.Estado)

	// cliente já existe: nuevo_cliente é ignorado
	_, env = h.call(t, admin, "shift.create", map[string]any{
		"fecha": "2025-06-10", "hora": "09:00", "documento": "4.123.456-7",
		"servicios": []uint{corte.ID},
	})
	second := decode[dto.ShiftListDTO](t, env)
	assert.Equal(t, first.ClienteID, second.ClienteID)

	_, env = h.call(t, admin, "shift.create", map[string]any{
		"fecha": "2025-06-11", "hora": "11:30", "documento": "4.123.456-7",
		"servicios": []uint{color.ID},
	})
	require.True(t, env.Success)

	_, env = h.call(t, admin, "shift.updateStatus", map[string]any{"id": second.ID, "estado": "cancelled"})
	assert.Equal(t, "cancelled", decode[dto.ShiftListDTO](t, env).Estado)

	_, env = h.call(t, admin, "shift.getByDate", map[string]string{"fecha": "2025-06-10"})
	day := decode[[]dto.ShiftListDTO](t, env)
	require.Len(t, day, 2)
	assert.Equal(t, "09:00", day[0].Hora)
	assert.Equal(t, "10:00", day[1].Hora)

	_, env = h.call(t, admin, "shift.getMonthlyLoad", map[string]int{"year": 2025, "month": 6})
	assert.Equal(t, map[string]int{"2025-06-10": 1, "2025-06-11": 1}, decode[map[string]int](t, env))

	_, env = h.call(t, admin, "shift.getYearlyLoad", map[string]int{"year": 2025})
	assert.Equal(t, map[string]int{"2025-06-10": 1, "2025-06-11": 1}, decode[map[string]int](t, env))

	_, env = h.call(t, admin, "shift.getInitialData", map[string]any{"date": "2025-06-11", "year": 2025, "month": 6})
	initial := decode[dto.InitialDataDTO](t, env)
	require.Len(t, initial.Shifts, 1)
	assert.Equal(t, 2, initial.Load.Total())
	assert.Equal(t, 2, initial.MonthTotal)

	_, env = h.call(t, admin, "shift.getAvailability", map[string]string{"fecha": "2025-06-10"})
	slots := decode[[]struct {
		Hora   string `json:"hora"`
		Booked int    `json:"booked"`
	}](t, env)
	require.NotEmpty(t, slots)
	assert.Equal(t, "08:00", slots[0].Hora)

	status, env = h.call(t, admin, "shift.getMonthlyLoad", map[string]int{"year": 2025, "month": 13})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_year_or_month", env.Error.Code)
}

func TestCustomers_Methods(t *testing.T) {
	h := newHarness(t)
	admin := h.env.Admin

	_, env := h.call(t, admin, "customers.findByDocument", map[string]string{"documento": "123"})
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)

	_, env = h.call(t, admin, "customers.create", map[string]string{
		"documento": "123", "nombre": "juan", "apellido": "gómez", "telefono": "099 123 456",
	})
	created := decode[idOnly](t, env)

	status, env := h.call(t, admin, "customers.create", map[string]string{
		"documento": "123", "nombre": "otro", "apellido": "cliente",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "document_taken", env.Error.Code)

	_, env = h.call(t, admin, "customers.update", map[string]any{
		"id": created.ID,
		"data": map[string]string{
			"documento": "123", "nombre": "juan pablo", "apellido": "gómez",
		},
	})
	require.True(t, env.Success)

	_, env = h.call(t, admin, "customers.getPaginated", map[string]any{"search": "gómez"})
	page := decode[dto.PageDTO[struct {
		Nombre string `json:"nombre"`
	}]](t, env)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, "Juan pablo", page.Data[0].Nombre)

	_, env = h.call(t, admin, "customers.delete", map[string]uint{"id": created.ID})
	require.True(t, env.Success)

	status, env = h.call(t, admin, "customers.getById", map[string]uint{"id": created.ID})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "customer_not_found", env.Error.Code)
}

func TestSettings_Methods(t *testing.T) {
	h := newHarness(t)

	_, env := h.call(t, session.Anonymous, "settings.getAll", nil)
	defaults := decode[map[string]string](t, env)
	assert.Equal(t, "08:00", defaults["opening_time"])

	_, env = h.call(t, h.env.Admin, "settings.setMany", map[string]any{"business_name": "Bella", "interval_minutes": 45})
	saved := decode[map[string]string](t, env)
	assert.Equal(t, "Bella", saved["business_name"])
	assert.Equal(t, "45", saved["interval_minutes"])
	assert.Equal(t, "08:00", saved["opening_time"])

	status, _ := h.call(t, session.Anonymous, "settings.setMany", map[string]any{"x": "y"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoles_Methods(t *testing.T) {
	h := newHarness(t)

	_, env := h.call(t, h.env.Admin, "roles.update", map[string]any{
		"id": 2, "label": "Recepción", "permissions": []string{"shift"},
	})
	require.True(t, env.Success)

	_, env = h.call(t, h.env.Admin, "roles.getAll", nil)
	roles := decode[[]struct {
		ID          uint     `json:"id"`
		Label       string   `json:"label"`
		Permissions []string `json:"permissions"`
	}](t, env)
	require.Len(t, roles, 2)
	assert.Equal(t, "Recepción", roles[1].Label)
	assert.Equal(t, []string{"shift"}, roles[1].Permissions)

	employee := h.env.AddUser(t, "eva", 2)
	status, env := h.call(t, employee, "roles.update", map[string]any{
		"id": 2, "permissions": []string{"*"},
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "admin_level_required", env.Error.Code)
}

func TestBackup_UnsupportedWithoutLocalFile(t *testing.T) {
	h := newHarness(t)

	status, env := h.call(t, h.env.Admin, "backup.create", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "backup_unsupported", env.Error.Code)
}
