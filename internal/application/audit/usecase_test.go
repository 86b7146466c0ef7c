package audit_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditpro-api/internal/application/audit"
	"github.com/jhoicas/auditpro-api/internal/application/dto"
	"github.com/jhoicas/auditpro-api/internal/domain"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
	"github.com/jhoicas/auditpro-api/pkg/logger"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type harness struct {
	uc       *audit.AuditUseCase
	sessions *fakeSessionRepo
	items    *fakeItemRepo
	history  *fakeHistoryRepo
	parser   *fakeParser
	pdf      *fakePDF
}

func newHarness() *harness {
	h := &harness{
		sessions: &fakeSessionRepo{sessions: map[string]*entity.AuditSession{}},
		items:    &fakeItemRepo{items: map[string][]entity.InventoryItem{}},
		history:  &fakeHistoryRepo{},
		parser: &fakeParser{items: []entity.InventoryItem{
			{ID: "A100", SKU: "A100", Description: "Cargador USB-C", TheoreticalQty: 10},
			{ID: "B200", SKU: "B200", Description: "Cable HDMI", TheoreticalQty: 2},
			{ID: "C300", SKU: "C300", Description: "Funda", TheoreticalQty: 0},
		}},
		pdf: &fakePDF{},
	}
	users := &fakeUserRepo{users: []*entity.User{
		{ID: "u-1", Username: "maria", Name: "María Pérez", Role: entity.RoleAuditor},
	}}
	tx := &fakeTxRunner{sessions: h.sessions, items: h.items}
	h.uc = audit.NewAuditUseCase(tx, h.sessions, h.items, users, h.history, h.parser, h.pdf, logger.Nop()).
		WithClock(func() time.Time { return testNow })
	return h
}

func (h *harness) start(t *testing.T) string {
	t.Helper()
	out, err := h.uc.CreateSession(context.Background(), "maria",
		dto.CreateAuditRequest{StoreName: " Tienda Central ", Observations: "turno mañana"},
		strings.NewReader("xlsx"))
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSession
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSession_IniciaActivaConAuditorAutenticado(t *testing.T) {
	h := newHarness()
	out, err := h.uc.CreateSession(context.Background(), "MARIA",
		dto.CreateAuditRequest{StoreName: " Tienda Central "}, strings.NewReader("xlsx"))
	require.NoError(t, err)

	assert.Equal(t, "Tienda Central", out.StoreName)
	assert.Equal(t, "María Pérez", out.AuditorName)
	assert.Equal(t, entity.AuditStatusActive, out.Status)
	assert.Equal(t, testNow, out.Date)
	assert.Equal(t, 3, out.Progress.TotalItems)
	assert.Equal(t, 0, out.Progress.ProgressPct)

	stored := h.items.items[out.ID]
	require.Len(t, stored, 3)
	for i, it := range stored {
		assert.Equal(t, i, it.Position)
		assert.Equal(t, 0, it.PhysicalQty)
	}
	assert.Equal(t, "u-1", h.sessions.sessions[out.ID].CreatedBy)
}

func TestCreateSession_Validaciones(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.uc.CreateSession(ctx, "maria", dto.CreateAuditRequest{StoreName: "  "}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.CreateSession(ctx, "maria", dto.CreateAuditRequest{StoreName: "T"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.CreateSession(ctx, "fantasma", dto.CreateAuditRequest{StoreName: "T"}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	h.parser.items = nil
	_, err = h.uc.CreateSession(ctx, "maria", dto.CreateAuditRequest{StoreName: "T"}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrEmptyInventory)

	h.parser.err = fmt.Errorf("%w: hoja vacía", domain.ErrInvalidInput)
	_, err = h.uc.CreateSession(ctx, "maria", dto.CreateAuditRequest{StoreName: "T"}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, h.sessions.sessions)
}

// ──────────────────────────────────────────────────────────────────────────────
// Scan
// ──────────────────────────────────────────────────────────────────────────────

func TestScan_AplicaCantidadesAcumuladas(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	ctx := context.Background()

	out, err := h.uc.Scan(ctx, id, "a100")
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 1, out.QuantityAdded)
	assert.Equal(t, 1, out.Item.PhysicalQty)
	require.NotNil(t, out.Item.ScannedAt)
	assert.Equal(t, testNow, *out.Item.ScannedAt)

	out, err = h.uc.Scan(ctx, id, "A100 5")
	require.NoError(t, err)
	assert.Equal(t, 5, out.QuantityAdded)
	assert.Equal(t, 6, out.Item.PhysicalQty)

	out, err = h.uc.Scan(ctx, id, "3*A100")
	require.NoError(t, err)
	assert.Equal(t, 9, out.Item.PhysicalQty)
	assert.Equal(t, -1, out.Item.Difference)

	assert.Equal(t, 9, h.items.items[id][0].PhysicalQty)
	assert.Equal(t, 3, h.items.updates)
}

func TestScan_NoEncontradoNoEsError(t *testing.T) {
	h := newHarness()
	id := h.start(t)

	out, err := h.uc.Scan(context.Background(), id, "  ZZZZ ")
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, "código no encontrado: ZZZZ", out.Message)
	assert.Nil(t, out.Item)
	assert.Equal(t, 0, h.items.updates, "un fallo no debe tocar los conteos")
}

func TestScan_LecturaVaciaEsNoOp(t *testing.T) {
	h := newHarness()
	id := h.start(t)

	_, err := h.uc.Scan(context.Background(), id, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, h.items.updates)
}

func TestScan_ConteoNoSuperaElMaximo(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	h.items.items[id][0].PhysicalQty = entity.MaxQuantity - 1

	_, err := h.uc.Scan(context.Background(), id, "A100 2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, h.items.updates)
	assert.Equal(t, entity.MaxQuantity-1, h.items.items[id][0].PhysicalQty)

	out, err := h.uc.Scan(context.Background(), id, "A100")
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, out.Item.PhysicalQty)
}

func TestScan_SesionInexistenteOFinalizada(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.uc.Scan(ctx, "no-existe", "A100")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id := h.start(t)
	_, err = h.uc.Finish(ctx, id, nil)
	require.NoError(t, err)
	_, err = h.uc.Scan(ctx, id, "A100")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta, cierre y cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestListItems_FiltraYOrdenaEscaneadosPrimero(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	ctx := context.Background()

	_, err := h.uc.Scan(ctx, id, "B200")
	require.NoError(t, err)

	all, err := h.uc.ListItems(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "B200", all.Items[0].SKU)
	assert.Equal(t, "A100", all.Items[1].SKU)

	filtered, err := h.uc.ListItems(ctx, id, "cable")
	require.NoError(t, err)
	assert.Equal(t, 3, filtered.Total)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "B200", filtered.Items[0].SKU)

	bySKU, err := h.uc.ListItems(ctx, id, "c3")
	require.NoError(t, err)
	require.Len(t, bySKU.Items, 1)
	assert.Equal(t, "C300", bySKU.Items[0].SKU)
}

func TestGetSession_Progreso(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	ctx := context.Background()
	_, err := h.uc.Scan(ctx, id, "A100 4")
	require.NoError(t, err)

	out, err := h.uc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Progress.TotalPhysical)
	assert.Equal(t, 1, out.Progress.ScannedLines)
	assert.Equal(t, 33, out.Progress.ProgressPct)

	_, err = h.uc.GetSession(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinish_ReemplazaObservaciones(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	obs := " faltan cajas "

	out, err := h.uc.Finish(context.Background(), id, &obs)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusCompleted, out.Status)
	assert.Equal(t, "faltan cajas", out.Observations)

	_, err = h.uc.Finish(context.Background(), id, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancel(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	id := h.start(t)

	require.NoError(t, h.uc.Cancel(ctx, id))
	_, err := h.uc.GetSession(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id = h.start(t)
	_, err = h.uc.Finish(ctx, id, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, h.uc.Cancel(ctx, id), domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Informe, exportación e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestReport_Discrepancias(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	ctx := context.Background()
	_, err := h.uc.Scan(ctx, id, "A100 10")
	require.NoError(t, err)
	_, err = h.uc.Scan(ctx, id, "B200")
	require.NoError(t, err)

	rep, err := h.uc.Report(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TotalItems)
	assert.Equal(t, 1, rep.TotalDiscrepancies)
	assert.Equal(t, "66.67", rep.AccuracyPct.StringFixed(2))
	require.Len(t, rep.Lines, 3)
	assert.Equal(t, "A100", rep.Lines[0].SKU, "orden de carga")
	assert.Equal(t, -1, rep.Lines[1].Difference)
}

func TestExport_RequiereFinalizada(t *testing.T) {
	h := newHarness()
	id := h.start(t)

	_, _, err := h.uc.Export(context.Background(), id)
	assert.True(t, errors.Is(err, domain.ErrAuditNotCompleted))
	assert.Equal(t, 0, h.pdf.calls)
	assert.Empty(t, h.history.entries)
}

func TestExport_GeneraPDFYGuardaHistorial(t *testing.T) {
	h := newHarness()
	id := h.start(t)
	ctx := context.Background()
	_, err := h.uc.Scan(ctx, id, "A100 10")
	require.NoError(t, err)
	_, err = h.uc.Finish(ctx, id, nil)
	require.NoError(t, err)

	pdf, filename, err := h.uc.Export(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "Auditoria_Tienda Central_2024-03-15.pdf", filename)
	assert.Equal(t, 1, h.pdf.summary.TotalDiscrepancies)

	hist, err := h.uc.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, id, hist[0].ID)
	assert.Equal(t, 3, hist[0].TotalItems)
	assert.Equal(t, 1, hist[0].TotalDiscrepancies)

	// Reexportar no duplica la entrada.
	_, _, err = h.uc.Export(ctx, id)
	require.NoError(t, err)
	hist, err = h.uc.History(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestHistory_ConservaSoloLasMasRecientes(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	var ids []string
	for i := 0; i < repository.HistoryLimit+2; i++ {
		id := h.start(t)
		_, err := h.uc.Finish(ctx, id, nil)
		require.NoError(t, err)
		_, _, err = h.uc.Export(ctx, id)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	hist, err := h.uc.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, repository.HistoryLimit)
	assert.Equal(t, ids[len(ids)-1], hist[0].ID, "la más reciente primero")
	assert.Equal(t, ids[2], hist[len(hist)-1].ID)
}

func TestReportFilename_SinSeparadoresDeRuta(t *testing.T) {
	assert.Equal(t, "Auditoria_Tienda Central_2024-03-15.pdf", audit.ReportFilename("Tienda Central", testNow))
	assert.Equal(t, "Auditoria__fuera_2024-03-15.pdf", audit.ReportFilename("../fuera", testNow))
	assert.Equal(t, "Auditoria_a_b_c_2024-03-15.pdf", audit.ReportFilename(`a/b\c`, testNow))
	assert.Equal(t, "Auditoria_tienda_2024-03-15.pdf", audit.ReportFilename("  ", testNow))
	assert.Equal(t, "Auditoria_Ñandú_2024-03-15.pdf", audit.ReportFilename("Ñandú", testNow))
}
