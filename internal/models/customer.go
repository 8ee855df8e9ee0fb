package models

import (
	"strings"
	"time"
)

// Cliente do salão, sem login. Documento é a chave de negócio.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Documento string    `gorm:"size:30;uniqueIndex;not null" json:"documento"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Apellido  string    `gorm:"size:100;not null" json:"apellido"`
	Telefono  *string   `gorm:"size:30" json:"telefono"`
	Email     *string   `gorm:"size:120" json:"email"`
	Busqueda  string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Customer) FullName() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}

// SearchKey junta os campos pesquisáveis em minúsculas, uma linha por
// campo; nome e sobrenome ficam juntos para achar "ana pérez".
func (c Customer) SearchKey() string {
	fields := []string{c.Documento, c.FullName()}
	if c.Telefono != nil {
		fields = append(fields, *c.Telefono)
	}
	if c.Email != nil {
		fields = append(fields, *c.Email)
	}
	return strings.ToLower(strings.Join(fields, "\n"))
}
