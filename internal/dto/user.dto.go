package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserDTO struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Usuario   string    `json:"usuario"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin *string   `json:"last_login"`
}

func FromUser(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Apellido:  u.Apellido,
		Usuario:   u.Usuario,
		Level:     u.Level,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func FromUsers(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, FromUser(u))
	}
	return out
}

type LoginDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type SessionDTO struct {
	Authenticated bool     `json:"authenticated"`
	User          *UserDTO `json:"user,omitempty"`
}
