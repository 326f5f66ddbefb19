package entity

import "time"

// User representa el usuario de la aplicación. Aplicación mono-profesional:
// en la práctica existe un único usuario, el propio autónomo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
