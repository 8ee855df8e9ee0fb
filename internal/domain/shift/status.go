package shift

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Shift Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusAbsent    Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled, StatusAbsent:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// ParseStatus aceita qualquer estado conhecido; não há restrição de
// transição (qualquer estado pode ir para qualquer outro).
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.Validation("invalid_status")
	}
	return s, nil
}

func InitialStatus() Status {
	return StatusPending
}

// CountsTowardLoad diz se o turno entra na carga do calendário.
func CountsTowardLoad(s Status) bool {
	return s != StatusCancelled
}
