package entity

import "time"

// Estados de una sesión de auditoría.
const (
	AuditStatusSetup     = "SETUP"
	AuditStatusActive    = "ACTIVE"
	AuditStatusCompleted = "COMPLETED"
)

// AuditSession representa una toma física de inventario en una tienda.
type AuditSession struct {
	ID           string
	StoreName    string
	AuditorName  string
	Date         time.Time
	Observations string
	Status       string          // SETUP, ACTIVE, COMPLETED
	CreatedBy    string          // ID del usuario que la inició; vacío si el usuario fue eliminado
	Items        []InventoryItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la sesión acepta escaneos.
func (s *AuditSession) IsActive() bool {
	return s.Status == AuditStatusActive
}
