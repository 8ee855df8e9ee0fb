package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:100;not null" json:"nombre"`
	Apellido  string    `gorm:"size:100;not null" json:"apellido"`
	Usuario   string    `gorm:"size:60;uniqueIndex;not null" json:"usuario"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Level     int       `gorm:"not null;default:2" json:"level"`
	CreatedAt time.Time `json:"created_at"`

	// horário de parede local, formato YYYY-MM-DD HH:mm:ss
	LastLogin *string `gorm:"size:19" json:"last_login"`
}
