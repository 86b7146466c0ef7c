package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo líneas del inventario teórico por sesión. Clave: (session_id, position).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

var inventoryItemCopyColumns = []string{
	"session_id", "position", "item_id", "sku", "description", "theoretical_qty", "physical_qty", "scanned_at",
}

// CreateBatch carga todas las líneas con COPY.
func (r *InventoryItemRepo) CreateBatch(ctx context.Context, sessionID string, items []entity.InventoryItem) error {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			sessionID, it.Position, it.ID, it.SKU, it.Description, it.TheoreticalQty, it.PhysicalQty, it.ScannedAt,
		})
	}
	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"inventory_items"}, inventoryItemCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy inventory items: %w", err)
	}
	if int(n) != len(items) {
		return fmt.Errorf("copy inventory items: se insertaron %d de %d", n, len(items))
	}
	return nil
}

// ListBySession devuelve las líneas en orden de carga.
func (r *InventoryItemRepo) ListBySession(ctx context.Context, sessionID string) ([]entity.InventoryItem, error) {
	query := `
		SELECT position, item_id, sku, description, theoretical_qty, physical_qty, scanned_at
		FROM inventory_items WHERE session_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	list := make([]entity.InventoryItem, 0)
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.Position, &it.ID, &it.SKU, &it.Description, &it.TheoreticalQty, &it.PhysicalQty, &it.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateCount persiste el conteo físico y la hora del último escaneo.
func (r *InventoryItemRepo) UpdateCount(ctx context.Context, sessionID string, item entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET physical_qty = $3, scanned_at = $4
		WHERE session_id = $1 AND position = $2`
	tag, err := r.q.Exec(ctx, query, sessionID, item.Position, item.PhysicalQty, item.ScannedAt)
	if err != nil {
		return fmt.Errorf("update inventory count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory count: línea %d no existe en la sesión %s", item.Position, sessionID)
	}
	return nil
}
