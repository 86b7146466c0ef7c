package audit_test

import (
	"context"
	"errors"
	"io"
	"strings"

	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
)

// ── Fakes en memoria de los puertos ─────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[string]*entity.AuditSession
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.AuditSession) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*entity.AuditSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.AuditSession, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.AuditSession) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type fakeItemRepo struct {
	items   map[string][]entity.InventoryItem
	updates int
}

func (r *fakeItemRepo) CreateBatch(_ context.Context, sessionID string, items []entity.InventoryItem) error {
	r.items[sessionID] = append([]entity.InventoryItem(nil), items...)
	return nil
}

func (r *fakeItemRepo) ListBySession(_ context.Context, sessionID string) ([]entity.InventoryItem, error) {
	return append([]entity.InventoryItem(nil), r.items[sessionID]...), nil
}

func (r *fakeItemRepo) UpdateCount(_ context.Context, sessionID string, item entity.InventoryItem) error {
	list := r.items[sessionID]
	for i := range list {
		if list[i].Position == item.Position {
			list[i].PhysicalQty = item.PhysicalQty
			list[i].ScannedAt = item.ScannedAt
			r.updates++
			return nil
		}
	}
	return errors.New("línea no encontrada")
}

type fakeTxRunner struct {
	sessions repository.AuditSessionRepository
	items    repository.InventoryItemRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.AuditSessionRepository, repository.InventoryItemRepository) error) error {
	return fn(f.sessions, f.items)
}

type fakeHistoryRepo struct {
	entries []entity.HistoryEntry
}

func (r *fakeHistoryRepo) Push(_ context.Context, e entity.HistoryEntry) error {
	out := []entity.HistoryEntry{e}
	for _, old := range r.entries {
		if old.ID != e.ID {
			out = append(out, old)
		}
	}
	if len(out) > repository.HistoryLimit {
		out = out[:repository.HistoryLimit]
	}
	r.entries = out
	return nil
}

func (r *fakeHistoryRepo) List(_ context.Context) ([]entity.HistoryEntry, error) {
	return r.entries, nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) { return r.users, nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ string) error       { return nil }
func (r *fakeUserRepo) Count(_ context.Context) (int, error)           { return len(r.users), nil }

// fakeParser devuelve siempre las mismas líneas; ignora el contenido.
type fakeParser struct {
	items []entity.InventoryItem
	err   error
}

func (p *fakeParser) Parse(_ context.Context, r io.Reader) ([]entity.InventoryItem, error) {
	_, _ = io.ReadAll(r)
	if p.err != nil {
		return nil, p.err
	}
	return append([]entity.InventoryItem(nil), p.items...), nil
}

type fakePDF struct {
	calls   int
	summary auditdomain.Summary
}

func (g *fakePDF) GenerateReportPDF(_ context.Context, _ *entity.AuditSession, s auditdomain.Summary) ([]byte, error) {
	g.calls++
	g.summary = s
	return []byte("%PDF-1.3 fake"), nil
}
