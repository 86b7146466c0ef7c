package repository

import (
	"context"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// AuditSessionRepository define el puerto de persistencia para sesiones de auditoría (DIP).
// GetByID no carga Items; para eso está InventoryItemRepository.
type AuditSessionRepository interface {
	Create(ctx context.Context, session *entity.AuditSession) error
	GetByID(ctx context.Context, id string) (*entity.AuditSession, error)
	// GetForUpdate bloquea la fila de la sesión (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.AuditSession, error)
	Update(ctx context.Context, session *entity.AuditSession) error
	Delete(ctx context.Context, id string) error
}
