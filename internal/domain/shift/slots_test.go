package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlots(t *testing.T) {
	grid, err := DaySlots("08:00", "10:00", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, grid)

	grid, err = DaySlots("08:00", "09:10", 45)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:45"}, grid)

	grid, err = DaySlots("20:00", "08:00", 30)
	require.NoError(t, err)
	assert.Empty(t, grid)

	_, err = DaySlots("8am", "10:00", 30)
	assert.Error(t, err)

	_, err = DaySlots("08:00", "10:00", 0)
	assert.Error(t, err)
}

func TestFillSlots(t *testing.T) {
	grid := []string{"08:00", "08:30", "09:00"}

	slots := FillSlots(grid, []ShiftTime{
		{Hora: "08:30", Status: StatusPending},
		{Hora: "08:30", Status: StatusCompleted},
		{Hora: "09:00", Status: StatusCancelled},
		{Hora: "07:15", Status: StatusAbsent},
		{Hora: "21:00", Status: StatusCancelled},
	})

	assert.Equal(t, []Slot{
		{Hora: "08:00", Booked: 0},
		{Hora: "08:30", Booked: 2},
		{Hora: "09:00", Booked: 0},
		{Hora: "07:15", Booked: 1},
	}, slots)
}
