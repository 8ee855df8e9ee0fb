package timezone

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	TimestampLayout = "2006-01-02 15:04:05"
)

// zona configurada; vazio = relógio local da máquina
var current = ""

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Configure define a zona usada por Now. Zona inválida ou vazia
// mantém o horário local do sistema.
func Configure(tz string) {
	if IsValid(tz) {
		current = tz
		return
	}
	current = ""
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// Now devolve o horário de parede local, não UTC.
func Now() time.Time {
	return time.Now().In(Location(current))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

func IsTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// MonthRange devolve [início, fim) como datas YYYY-MM-DD para o mês.
func MonthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start.Format(DateLayout), end.Format(DateLayout)
}

func YearRange(year int) (string, string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-01-01", year+1)
}
