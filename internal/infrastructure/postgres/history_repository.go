package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial reciente en la tabla audit_history, recortado a repository.HistoryLimit.
type HistoryRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewHistoryRepository construye el adaptador de historial.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool, now: time.Now}
}

// Push inserta (o reemplaza, si la sesión ya se había exportado) y recorta en la misma tx.
func (r *HistoryRepo) Push(ctx context.Context, e entity.HistoryEntry) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		upsert := `
			INSERT INTO audit_history (id, store_name, audit_date, auditor_name, total_items, total_discrepancies, accuracy_pct, saved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				store_name = EXCLUDED.store_name,
				audit_date = EXCLUDED.audit_date,
				auditor_name = EXCLUDED.auditor_name,
				total_items = EXCLUDED.total_items,
				total_discrepancies = EXCLUDED.total_discrepancies,
				accuracy_pct = EXCLUDED.accuracy_pct,
				saved_at = EXCLUDED.saved_at`
		if _, err := tx.Exec(ctx, upsert,
			e.ID, e.StoreName, e.Date, e.AuditorName, e.TotalItems, e.TotalDiscrepancies, e.AccuracyPct, r.now(),
		); err != nil {
			return fmt.Errorf("upsert audit history: %w", err)
		}

		trim := `
			DELETE FROM audit_history
			WHERE id NOT IN (SELECT id FROM audit_history ORDER BY saved_at DESC LIMIT $1)`
		if _, err := tx.Exec(ctx, trim, repository.HistoryLimit); err != nil {
			return fmt.Errorf("trim audit history: %w", err)
		}
		return nil
	})
}

// List devuelve lo más reciente primero.
func (r *HistoryRepo) List(ctx context.Context) ([]entity.HistoryEntry, error) {
	query := `
		SELECT id, store_name, audit_date, auditor_name, total_items, total_discrepancies, accuracy_pct
		FROM audit_history ORDER BY saved_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, repository.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list audit history: %w", err)
	}
	defer rows.Close()

	list := make([]entity.HistoryEntry, 0, repository.HistoryLimit)
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.StoreName, &e.Date, &e.AuditorName, &e.TotalItems, &e.TotalDiscrepancies, &e.AccuracyPct); err != nil {
			return nil, fmt.Errorf("scan audit history: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
