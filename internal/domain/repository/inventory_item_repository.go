package repository

import (
	"context"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// InventoryItemRepository puerto para las líneas del inventario teórico de una sesión.
// Las líneas se devuelven siempre en orden de carga (Position).
type InventoryItemRepository interface {
	CreateBatch(ctx context.Context, sessionID string, items []entity.InventoryItem) error
	ListBySession(ctx context.Context, sessionID string) ([]entity.InventoryItem, error)
	// UpdateCount persiste PhysicalQty y ScannedAt de una línea.
	UpdateCount(ctx context.Context, sessionID string, item entity.InventoryItem) error
}
