package entity

import "time"

// Roles válidos para los operadores.
const (
	RoleAdmin    = "admin"
	RoleCobrador = "cobrador"
)

// User representa un operador de cobranza.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string // admin, cobrador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
