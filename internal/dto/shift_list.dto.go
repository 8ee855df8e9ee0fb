package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shift"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ShiftListDTO é o formato que a agenda espera: serviços numa única
// string separada por vírgulas, só para exibição; ServiceIDs é a lista
// estruturada.
type ShiftListDTO struct {
	ID         uint      `json:"id"`
	Fecha      string    `json:"fecha"`
	Hora       string    `json:"hora"`
	Cliente    string    `json:"cliente"`
	ClienteID  *uint     `json:"cliente_id"`
	Servicios  string    `json:"servicios"`
	ServiceIDs []uint    `json:"service_ids"`
	Estado     string    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromShift(s models.Shift) ShiftListDTO {
	ids := make([]uint, 0, len(s.Services))
	for _, it := range s.Services {
		if it.ServiceID != nil {
			ids = append(ids, *it.ServiceID)
		}
	}

	return ShiftListDTO{
		ID:         s.ID,
		Fecha:      s.Fecha,
		Hora:       s.Hora,
		Cliente:    s.Cliente,
		ClienteID:  s.ClienteID,
		Servicios:  domain.JoinServiceNames(s.Services),
		ServiceIDs: ids,
		Estado:     s.Estado,
		CreatedAt:  s.CreatedAt,
	}
}

func FromShifts(list []models.Shift) []ShiftListDTO {
	out := make([]ShiftListDTO, 0, len(list))
	for _, s := range list {
		out = append(out, FromShift(s))
	}
	return out
}

type InitialDataDTO struct {
	Shifts     []ShiftListDTO `json:"shifts"`
	Load       domain.Load    `json:"load"`
	MonthTotal int            `json:"month_total"`
}
