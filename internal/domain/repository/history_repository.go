package repository

import (
	"context"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// HistoryLimit número de auditorías recientes que conserva el historial.
const HistoryLimit = 5

// HistoryRepository almacén explícito del historial reciente.
// Push inserta al inicio y descarta lo que exceda HistoryLimit; List devuelve lo más reciente primero.
type HistoryRepository interface {
	Push(ctx context.Context, entry entity.HistoryEntry) error
	List(ctx context.Context) ([]entity.HistoryEntry, error)
}
