package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Estados laborales de User.
const (
	UserStatusActive     = "active"
	UserStatusTerminated = "terminated"
)

// User representa una identidad conocida por el portal (empleado o administrador).
// Se crea y se da de baja por acción administrativa; el núcleo de asistencia solo la lee.
type User struct {
	ID        string
	Name      string
	Email     string
	Position  string
	Role      string // admin, employee
	Status    string // active, terminated
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive informa si la identidad puede iniciar sesión.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// ValidUserStatus informa si status es un estado laboral conocido.
func ValidUserStatus(status string) bool {
	return status == UserStatusActive || status == UserStatusTerminated
}
