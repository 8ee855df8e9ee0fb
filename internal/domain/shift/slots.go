package shift

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Slot struct {
	Hora   string `json:"hora"`
	Booked int    `json:"booked"`
}

// DaySlots monta a grade do dia de opening (inclusivo) até closing
// (exclusivo), de interval em interval minutos.
func DaySlots(opening, closing string, interval int) ([]string, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", interval)
	}

	start, err := time.Parse(timezone.TimeLayout, opening)
	if err != nil {
		return nil, fmt.Errorf("invalid opening time %q: %w", opening, err)
	}
	end, err := time.Parse(timezone.TimeLayout, closing)
	if err != nil {
		return nil, fmt.Errorf("invalid closing time %q: %w", closing, err)
	}

	step := time.Duration(interval) * time.Minute

	var out []string
	for cur := start; cur.Before(end); cur = cur.Add(step) {
		out = append(out, cur.Format(timezone.TimeLayout))
	}
	return out, nil
}

// FillSlots conta, para cada horário da grade, os turnos que ocupam a
// agenda. Turnos fora da grade entram no fim, em ordem de hora.
func FillSlots(grid []string, shifts []ShiftTime) []Slot {
	counts := make(map[string]int, len(grid))
	for _, s := range shifts {
		if CountsTowardLoad(s.Status) {
			counts[s.Hora]++
		}
	}

	out := make([]Slot, 0, len(grid))
	inGrid := make(map[string]bool, len(grid))
	for _, h := range grid {
		inGrid[h] = true
		out = append(out, Slot{Hora: h, Booked: counts[h]})
	}

	for _, s := range shifts {
		if inGrid[s.Hora] || !CountsTowardLoad(s.Status) {
			continue
		}
		inGrid[s.Hora] = true
		out = append(out, Slot{Hora: s.Hora, Booked: counts[s.Hora]})
	}
	return out
}

type ShiftTime struct {
	Hora   string
	Status Status
}
