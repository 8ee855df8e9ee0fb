package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestFromShift(t *testing.T) {
	id := uint(3)
	d := FromShift(models.Shift{
		ID:     1,
		Fecha:  "2025-06-10",
		Hora:   "10:00",
		Estado: "pending",
		Services: []models.ShiftService{
			{ServiceID: &id, Nombre: "Corte"},
			{Nombre: "Servicio eliminado"},
		},
	})

	assert.Equal(t, "Corte, Servicio eliminado", d.Servicios)
	assert.Equal(t, []uint{3}, d.ServiceIDs)
}

func TestUserDTO_NeverCarriesPassword(t *testing.T) {
	b, err := json.Marshal(FromUser(models.User{ID: 1, Usuario: "admin", Password: "hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "password")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(5, 2))
	assert.Equal(t, 1, TotalPages(2, 2))
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}
