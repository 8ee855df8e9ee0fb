package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

const (
	CodeInternal     = "internal_error"
	MessageInternal  = "Error de comunicación. Intente nuevamente."
	CodeInvalidLogin = "invalid_credentials"
)

var messages = map[string]string{
	CodeInvalidLogin:         "Usuario o contraseña incorrectos.",
	"invalid_request":        "Datos inválidos.",
	"unknown_method":         "Operación desconocida.",
	"not_authenticated":      "Debe iniciar sesión.",
	"permission_denied":      "No tiene permiso para realizar esta acción.",
	"self_delete_forbidden":  "No puede eliminar su propia cuenta.",
	"admin_level_required":   "Solo el administrador puede modificar roles.",
	"user_not_found":         "Usuario no encontrado.",
	"role_not_found":         "Rol no encontrado.",
	"customer_not_found":     "Cliente no encontrado.",
	"service_not_found":      "Servicio no encontrado.",
	"shift_not_found":        "Turno no encontrado.",
	"username_taken":         "El nombre de usuario ya existe.",
	"document_taken":         "Ya existe un cliente con ese documento.",
	"service_name_taken":     "Ya existe un servicio con ese nombre.",
	"customer_required":      "Debe indicar los datos del cliente nuevo.",
	"service_inactive":       "El servicio seleccionado está inactivo.",
	"invalid_level":          "Nivel de acceso inválido.",
	"invalid_permission":     "Permiso desconocido.",
	"invalid_status":         "Estado inválido.",
	"backup_unsupported":     "La copia de seguridad solo está disponible con la base local.",
	"invalid_backup_file":    "El archivo no es una copia de seguridad válida.",
	"password_too_short":     "La contraseña es demasiado corta.",
	"current_password_wrong": "La contraseña actual es incorrecta.",
	"services_required":      "Debe seleccionar al menos un servicio.",
	"invalid_date_or_time":   "Fecha u hora inválida.",
	"invalid_year_or_month":  "Año o mes inválido.",
	"invalid_setting_value":  "Valor de configuración inválido.",
	"duplicate_migration_id": "Migración duplicada.",
	"migration_failed":       "Falló la actualización de la base de datos.",
	"backup_upload_failed":   "No se pudo subir la copia de seguridad.",
	"backup_failed":          "No se pudo crear la copia de seguridad.",
	"restore_failed":         "No se pudo preparar la restauración.",
}

// Message devolve o texto mostrado ao usuário para um código; códigos
// desconhecidos caem na mensagem genérica.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return MessageInternal
}

func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized, KindInvalidCredential:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateKey:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write responde fora do dispatcher (corpo inválido, rota inexistente)
// com o mesmo envelope.
func Write(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, httpresp.Failure(code, Message(code)))
}
