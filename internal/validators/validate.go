package validators

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator devolve a instância compartilhada, com as regras do domínio
// registradas:
//
//	date   YYYY-MM-DD
//	hhmm   HH:mm
//	estado pending | completed | cancelled | absent
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")

		// erros citam o nome do campo JSON
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			return timezone.IsDate(fl.Field().String())
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return timezone.IsTime(fl.Field().String())
		})
		_ = v.RegisterValidation("estado", func(fl validator.FieldLevel) bool {
			return shift.Status(fl.Field().String()).Valid()
		})

		instance = v
	})
	return instance
}

// Struct valida req e traduz a falha para um erro de validação do domínio.
func Struct(req any) error {
	err := Validator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return httperr.BusinessError{
			Kind: httperr.KindValidation,
			Code: codeFor(verrs[0]),
			Err:  err,
		}
	}
	return httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_request", Err: err}
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "date", "hhmm":
		return "invalid_date_or_time"
	case "estado":
		return "invalid_status"
	}

	switch fe.Field() {
	case "password", "new":
		if fe.Tag() == "min" {
			return "password_too_short"
		}
	case "servicios":
		return "services_required"
	case "year", "month":
		return "invalid_year_or_month"
	}
	return "invalid_request"
}

// Binding expõe a instância compartilhada ao binding do gin. Só structs
// são validadas; maps e escalares passam direto.
func Binding() binding.StructValidator {
	return ginValidator{}
}

type ginValidator struct{}

func (ginValidator) ValidateStruct(obj any) error {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return Struct(obj)
}

func (ginValidator) Engine() any {
	return Validator()
}
