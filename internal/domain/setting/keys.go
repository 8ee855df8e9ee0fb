package setting

import (
	"fmt"
	"strconv"
)

// Chaves operacionais conhecidas. Outras chaves são aceitas e gravadas
// como texto.
const (
	KeyOpeningTime  = "opening_time"
	KeyClosingTime  = "closing_time"
	KeyInterval     = "interval_minutes"
	KeyWeekStart    = "week_start"
	KeyHeatLow      = "heatmap_low"
	KeyHeatMedium   = "heatmap_medium"
	KeyHeatHigh     = "heatmap_high"
	KeyBusinessName = "business_name"
)

var defaults = map[string]string{
	KeyOpeningTime:  "08:00",
	KeyClosingTime:  "20:00",
	KeyInterval:     "30",
	KeyWeekStart:    "1",
	KeyHeatLow:      "3",
	KeyHeatMedium:   "6",
	KeyHeatHigh:     "10",
	KeyBusinessName: "Mi Salón",
}

var order = []string{
	KeyOpeningTime,
	KeyClosingTime,
	KeyInterval,
	KeyWeekStart,
	KeyHeatLow,
	KeyHeatMedium,
	KeyHeatHigh,
	KeyBusinessName,
}

func Keys() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func Defaults() map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// Coerce converte o valor vindo da UI para o texto gravado. Não há
// validação além da conversão; objetos e listas são rejeitados.
func Coerce(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("unsupported setting value of type %T", v)
	}
}
