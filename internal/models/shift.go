package models

import "time"

type Shift struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Fecha string `gorm:"size:10;not null" json:"fecha"`
	Hora  string `gorm:"size:5;not null" json:"hora"`

	// cópia do nome: o histórico sobrevive à exclusão do cliente
	Cliente   string `gorm:"size:201;not null" json:"cliente"`
	ClienteID *uint  `json:"cliente_id"`

	Estado    string    `gorm:"size:20;not null;default:'pending'" json:"estado"`
	CreatedAt time.Time `json:"created_at"`

	Services []ShiftService `gorm:"foreignKey:ShiftID" json:"services"`
}

// ShiftService liga turno e serviço guardando o nome do serviço no
// momento da reserva.
type ShiftService struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ShiftID   uint   `gorm:"not null;index" json:"shift_id"`
	ServiceID *uint  `json:"service_id"`
	Nombre    string `gorm:"size:100;not null" json:"nombre"`
}
