package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"
)

// DefaultAdminUsername es el usuario administrador sembrado al arrancar; no se puede eliminar.
const DefaultAdminUsername = "admin"

// User representa un operador del sistema de auditoría.
type User struct {
	ID           string
	Username     string
	Name         string
	Role         string    // admin, auditor
	PasswordHash string    // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
