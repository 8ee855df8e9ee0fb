package models

import (
	"strings"
	"time"
)

// Service é um item do catálogo do salão (corte, tintura...).
// NombreKey guarda o nome em minúsculas (Unicode) e carrega o índice
// único; lower() do sqlite só conhece ASCII.
type Service struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	NombreKey string    `gorm:"size:100;uniqueIndex:idx_services_nombre_key" json:"-"`
	Activo    int       `gorm:"not null;default:1" json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

func ServiceNameKey(nombre string) string {
	return strings.ToLower(strings.TrimSpace(nombre))
}
