package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

func newTestDispatcher() *Dispatcher {
	return New(logging.Discard())
}

func TestDispatch_UnknownMethod(t *testing.T) {
	d := newTestDispatcher()

	status, env := d.Dispatch(context.Background(), session.Anonymous, "nope.nothing", nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unknown_method", env.Error.Code)
}

func TestDispatch_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", "x.y", httperr.Validation("invalid_status"), http.StatusBadRequest, "invalid_status"},
		{"unauthorized", "x.y", httperr.Unauthorized("permission_denied"), http.StatusUnauthorized, "permission_denied"},
		{"not found", "x.y", httperr.NotFound("shift_not_found"), http.StatusNotFound, "shift_not_found"},
		{"duplicate", "x.y", httperr.DuplicateKey("username_taken", nil), http.StatusConflict, "username_taken"},
		{"infra", "x.y", errors.New("disk I/O error"), http.StatusInternalServerError, httperr.CodeInternal},
		{"fatal", "x.y", httperr.Fatal("backup_failed", errors.New("boom")), http.StatusInternalServerError, httperr.CodeInternal},
		{"login unknown user", methodLogin, httperr.NotFound("user_not_found"), http.StatusUnauthorized, httperr.CodeInvalidLogin},
		{"login wrong password", methodLogin, httperr.InvalidCredential(httperr.CodeInvalidLogin), http.StatusUnauthorized, httperr.CodeInvalidLogin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispatcher()
			d.Handle(tc.method, func(context.Context, session.Session, json.RawMessage) (any, error) {
				return nil, tc.err
			})

			status, env := d.Dispatch(context.Background(), session.Anonymous, tc.method, nil)

			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.wantCode, env.Error.Code)
			assert.Equal(t, httperr.Message(tc.wantCode), env.Error.Message)
		})
	}
}

func TestDispatch_InfraErrorHidesDetails(t *testing.T) {
	d := newTestDispatcher()
	d.Handle("x.y", func(context.Context, session.Session, json.RawMessage) (any, error) {
		return nil, errors.New("database is locked: /home/user/salon.db")
	})

	_, env := d.Dispatch(context.Background(), session.Anonymous, "x.y", nil)

	require.NotNil(t, env.Error)
	assert.Equal(t, httperr.MessageInternal, env.Error.Message)
}

func TestDispatch_RecoversPanic(t *testing.T) {
	d := newTestDispatcher()
	d.Handle("x.y", func(context.Context, session.Session, json.RawMessage) (any, error) {
		panic("unexpected")
	})

	status, env := d.Dispatch(context.Background(), session.Anonymous, "x.y", nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, httperr.CodeInternal, env.Error.Code)

	// o mutex foi liberado
	d.Handle("x.z", func(context.Context, session.Session, json.RawMessage) (any, error) {
		return "ok", nil
	})
	status, env = d.Dispatch(context.Background(), session.Anonymous, "x.z", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", env.Data)
}

func TestHandle_DuplicatePanics(t *testing.T) {
	d := newTestDispatcher()
	h := func(context.Context, session.Session, json.RawMessage) (any, error) { return nil, nil }

	d.Handle("x.y", h)
	assert.Panics(t, func() { d.Handle("x.y", h) })
}

func TestBind(t *testing.T) {
	t.Run("empty payload is an empty object", func(t *testing.T) {
		req, err := bind[customerPageRequest](nil)
		require.NoError(t, err)
		assert.Zero(t, req)

		_, err = bind[customerPageRequest](json.RawMessage("null"))
		require.NoError(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := bind[idRequest](json.RawMessage(`{"id":`))
		assert.True(t, httperr.IsBusiness(err, "invalid_request"))
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := bind[idRequest](json.RawMessage(`{"id":"uno"}`))
		assert.True(t, httperr.IsBusiness(err, "invalid_request"))
	})

	t.Run("validation codes", func(t *testing.T) {
		_, err := bind[createShiftRequest](json.RawMessage(
			`{"fecha":"2025-13-01","hora":"10:00","documento":"1","servicios":[1]}`,
		))
		assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

		_, err = bind[createShiftRequest](json.RawMessage(
			`{"fecha":"2025-06-01","hora":"10:00","documento":"1","servicios":[]}`,
		))
		assert.True(t, httperr.IsBusiness(err, "services_required"))

		_, err = bind[updateStatusRequest](json.RawMessage(`{"id":1,"estado":"done"}`))
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))

		_, err = bind[customerData](json.RawMessage(
			`{"documento":"1","nombre":"a","apellido":"b","email":"not-an-email"}`,
		))
		assert.True(t, httperr.IsBusiness(err, "invalid_request"))
	})

	t.Run("nested new customer is validated", func(t *testing.T) {
		_, err := bind[createShiftRequest](json.RawMessage(
			`{"fecha":"2025-06-01","hora":"10:00","documento":"1","servicios":[1],"nuevo_cliente":{"nombre":""}}`,
		))
		assert.True(t, httperr.IsBusiness(err, "invalid_request"))
	})

	t.Run("empty payload still checks required fields", func(t *testing.T) {
		_, err := bind[idRequest](nil)
		assert.True(t, httperr.IsBusiness(err, "invalid_request"))
	})

	t.Run("gin binding uses the shared rules", func(t *testing.T) {
		var req updateStatusRequest
		err := binding.JSON.BindBody([]byte(`{"id":1,"estado":"absent"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "absent", req.Estado)

		err = binding.JSON.BindBody([]byte(`{"id":1,"estado":"done"}`), &req)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("maps skip struct validation", func(t *testing.T) {
		req, err := bind[map[string]any](json.RawMessage(`{"theme":"dark","slot":30}`))
		require.NoError(t, err)
		assert.Equal(t, "dark", req["theme"])
	})
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(""))
	assert.Nil(t, optional("   "))
	require.NotNil(t, optional("099"))
	assert.Equal(t, "099", *optional("099"))
}
