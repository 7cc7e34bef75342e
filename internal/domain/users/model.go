package users

import (
	"time"

	"barangay-pet-registry/internal/ports/auth"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// User es una cuenta de staff dentro de un barangay. El hash de
// contraseña nunca sale del paquete por JSON.
type User struct {
	ID         string
	BarangayID string

	Username     string
	FullName     string
	PasswordHash string

	Role   auth.Role
	Status Status

	LastSignInAt  *time.Time
	LastSignOutAt *time.Time

	CreatedAt time.Time
}

// LastActive devuelve el evento de sesión más reciente, sea entrada
// o salida. Nil si la cuenta nunca inició sesión.
func (u User) LastActive() *time.Time {
	switch {
	case u.LastSignInAt == nil:
		return u.LastSignOutAt
	case u.LastSignOutAt == nil:
		return u.LastSignInAt
	case u.LastSignOutAt.After(*u.LastSignInAt):
		return u.LastSignOutAt
	default:
		return u.LastSignInAt
	}
}
