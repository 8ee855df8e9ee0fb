// Package dispatch recebe as chamadas da interface (método + payload
// JSON), valida o payload num struct tipado e encaminha para o caso de
// uso. Toda resposta sai no mesmo envelope {success, data, error}.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const methodLogin = "auth.login"

type Handler func(ctx context.Context, sess session.Session, payload json.RawMessage) (any, error)

func init() {
	binding.Validator = validators.Binding()
}

type Dispatcher struct {
	// mu serializa as chamadas: uma por vez até o banco.
	mu       sync.Mutex
	handlers map[string]Handler
	log      logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		log:      log,
	}
}

func (d *Dispatcher) Handle(method string, h Handler) {
	if _, dup := d.handlers[method]; dup {
		panic(fmt.Sprintf("dispatch: method %q registered twice", method))
	}
	d.handlers[method] = h
}

func (d *Dispatcher) Methods() []string {
	out := make([]string, 0, len(d.handlers))
	for m := range d.handlers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Dispatch executa o método e devolve o status HTTP junto com o envelope.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	sess session.Session,
	method string,
	payload json.RawMessage,
) (status int, env httpresp.Envelope) {

	start := time.Now()
	defer func() {
		code := "ok"
		if env.Error != nil {
			code = env.Error.Code
		}
		metrics.ObserveCall(method, code, time.Since(start))
	}()

	h, ok := d.handlers[method]
	if !ok {
		return http.StatusNotFound, httpresp.Failure("unknown_method", httperr.Message("unknown_method"))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("method", method).Errorf("panic while handling request: %v", r)
			status, env = http.StatusInternalServerError, httpresp.Failure(httperr.CodeInternal, httperr.MessageInternal)
		}
	}()

	data, err := h(ctx, sess, payload)
	if err != nil {
		return d.failure(method, err)
	}

	return http.StatusOK, httpresp.Success(data)
}

func (d *Dispatcher) failure(method string, err error) (int, httpresp.Envelope) {
	entry := d.log.WithField("method", method)

	var be httperr.BusinessError
	if !errors.As(err, &be) || be.Kind == httperr.KindFatal {
		entry.WithError(err).Error("request failed")
		return http.StatusInternalServerError, httpresp.Failure(httperr.CodeInternal, httperr.MessageInternal)
	}

	// usuário inexistente e senha errada chegam à tela com a mesma mensagem
	if method == methodLogin && (be.Kind == httperr.KindNotFound || be.Kind == httperr.KindInvalidCredential) {
		entry.WithField("reason", be.Code).Info("login rejected")
		return http.StatusUnauthorized, httpresp.Failure(
			httperr.CodeInvalidLogin,
			httperr.Message(httperr.CodeInvalidLogin),
		)
	}

	entry.WithFields(logrus.Fields{"kind": be.Kind, "code": be.Code}).Debug("request rejected")
	return httperr.StatusOf(be), httpresp.Failure(be.Code, httperr.Message(be.Code))
}

// ======================================================
// BINDING
// ======================================================

// bind decodifica o payload em T pelo binding JSON do gin e aplica as
// regras das tags. Payload vazio equivale a {}.
func bind[T any](payload json.RawMessage) (T, error) {
	var req T

	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return req, binding.Validator.ValidateStruct(&req)
	}

	if err := binding.JSON.BindBody(payload, &req); err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			return req, err
		}
		return req, httperr.BusinessError{
			Kind: httperr.KindValidation,
			Code: "invalid_request",
			Err:  err,
		}
	}

	return req, nil
}

// typed adapta uma função com request tipado para Handler.
func typed[T any](fn func(ctx context.Context, sess session.Session, req T) (any, error)) Handler {
	return func(ctx context.Context, sess session.Session, payload json.RawMessage) (any, error) {
		req, err := bind[T](payload)
		if err != nil {
			return nil, err
		}
		return fn(ctx, sess, req)
	}
}
