package user

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

var (
	errInvalidLevel    = httperr.Validation("invalid_level")
	errPasswordShort   = httperr.Validation("password_too_short")
	errSelfDelete      = httperr.Unauthorized("self_delete_forbidden")
	errCurrentPassword = httperr.Validation("current_password_wrong")
)
