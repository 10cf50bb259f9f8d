package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Estados de un usuario.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si r es uno de los roles conocidos.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleBodeguero || r == RoleVendedor
}
