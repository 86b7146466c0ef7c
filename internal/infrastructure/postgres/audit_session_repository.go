package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
)

var _ repository.AuditSessionRepository = (*AuditSessionRepo)(nil)

// AuditSessionRepo implementación de AuditSessionRepository sobre PostgreSQL (usable con pool o tx).
type AuditSessionRepo struct {
	q Querier
}

// NewAuditSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditSessionRepository(q Querier) *AuditSessionRepo {
	return &AuditSessionRepo{q: q}
}

const auditSessionColumns = `id, store_name, auditor_name, audit_date, observations, status, created_by, created_at, updated_at`

// Create inserta la cabecera de la sesión.
func (r *AuditSessionRepo) Create(ctx context.Context, s *entity.AuditSession) error {
	query := `
		INSERT INTO audit_sessions (` + auditSessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StoreName, s.AuditorName, s.Date, nullableText(s.Observations), s.Status,
		nullableText(s.CreatedBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit session: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera; (nil, nil) si no existe.
func (r *AuditSessionRepo) GetByID(ctx context.Context, id string) (*entity.AuditSession, error) {
	return r.get(ctx, `SELECT `+auditSessionColumns+` FROM audit_sessions WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE).
// Serializa los escaneos concurrentes sobre la misma sesión.
func (r *AuditSessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.AuditSession, error) {
	return r.get(ctx, `SELECT `+auditSessionColumns+` FROM audit_sessions WHERE id = $1 FOR UPDATE`, id)
}

func (r *AuditSessionRepo) get(ctx context.Context, query, id string) (*entity.AuditSession, error) {
	var s entity.AuditSession
	var obs, createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.StoreName, &s.AuditorName, &s.Date, &obs, &s.Status,
		&createdBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit session: %w", err)
	}
	s.Observations = textOrEmpty(obs)
	s.CreatedBy = textOrEmpty(createdBy)
	return &s, nil
}

// Update persiste estado y observaciones.
func (r *AuditSessionRepo) Update(ctx context.Context, s *entity.AuditSession) error {
	query := `
		UPDATE audit_sessions SET status = $2, observations = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Status, nullableText(s.Observations), s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update audit session: %w", err)
	}
	return nil
}

// Delete elimina la sesión; las líneas caen por ON DELETE CASCADE.
func (r *AuditSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM audit_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete audit session: %w", err)
	}
	return nil
}
