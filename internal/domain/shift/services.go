package shift

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// JoinServiceNames monta a lista "Corte, Tintura" mostrada pela UI a
// partir dos serviços gravados no turno, na ordem da reserva. O texto é
// só de exibição: nomes podem conter vírgula.
func JoinServiceNames(items []models.ShiftService) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Nombre)
	}
	return strings.Join(names, ", ")
}
