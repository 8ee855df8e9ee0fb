package httperr

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindDuplicateKey      Kind = "duplicate_key"
	KindInvalidCredential Kind = "invalid_credential"
	KindFatal             Kind = "fatal"
)

type BusinessError struct {
	Kind Kind
	Code string
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// ErrBusiness mantém a assinatura antiga: erro de regra sem tipo definido
// é tratado como validação.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Unauthorized(code string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code}
}

func NotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func DuplicateKey(code string, cause error) error {
	return BusinessError{Kind: KindDuplicateKey, Code: code, Err: cause}
}

func InvalidCredential(code string) error {
	return BusinessError{Kind: KindInvalidCredential, Code: code}
}

func Fatal(code string, cause error) error {
	return BusinessError{Kind: KindFatal, Code: code, Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf devolve o tipo do erro de negócio, ou "" para falhas de infraestrutura.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
