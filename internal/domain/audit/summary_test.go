package audit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

func TestSummarize_MetricasBasicas(t *testing.T) {
	items := []entity.InventoryItem{
		{SKU: "A", TheoreticalQty: 10, PhysicalQty: 10},
		{SKU: "B", TheoreticalQty: 5, PhysicalQty: 3},
		{SKU: "C", TheoreticalQty: 0, PhysicalQty: 2},
	}
	s := audit.Summarize(items)

	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 15, s.TotalTheoretical)
	assert.Equal(t, 15, s.TotalPhysical)
	assert.Equal(t, 3, s.ScannedLines)
	assert.Equal(t, 2, s.TotalDiscrepancies)
	assert.Equal(t, 100, s.ProgressPct)
	assert.True(t, decimal.RequireFromString("33.33").Equal(s.AccuracyPct), s.AccuracyPct.String())
}

func TestSummarize_ProgresoRedondeado(t *testing.T) {
	items := []entity.InventoryItem{
		{SKU: "A", TheoreticalQty: 1, PhysicalQty: 1},
		{SKU: "B", TheoreticalQty: 1},
		{SKU: "C", TheoreticalQty: 1},
	}
	s := audit.Summarize(items)
	assert.Equal(t, 33, s.ProgressPct)
	assert.Equal(t, 2, s.TotalDiscrepancies)
}

// Un inventario sin conteos y teórico cero no tiene diferencias.
func TestSummarize_TeoricoCeroSinConteo(t *testing.T) {
	s := audit.Summarize([]entity.InventoryItem{{SKU: "A"}})
	assert.Equal(t, 0, s.TotalDiscrepancies)
	assert.Equal(t, 0, s.ProgressPct)
	assert.True(t, decimal.NewFromInt(100).Equal(s.AccuracyPct))
}

func TestSummarize_Vacio(t *testing.T) {
	s := audit.Summarize(nil)
	assert.Equal(t, 0, s.TotalItems)
	assert.True(t, s.AccuracyPct.IsZero())
}

func TestDiscrepancies_ConservaOrden(t *testing.T) {
	items := []entity.InventoryItem{
		{SKU: "A", TheoreticalQty: 1, PhysicalQty: 0},
		{SKU: "B", TheoreticalQty: 1, PhysicalQty: 1},
		{SKU: "C", TheoreticalQty: 1, PhysicalQty: 4},
	}
	out := audit.Discrepancies(items)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].SKU)
	assert.Equal(t, "C", out[1].SKU)
	assert.Equal(t, 3, out[1].Difference())
}

func TestSortForDisplay_EscaneadosPrimero(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	items := []entity.InventoryItem{
		{SKU: "NO-1"},
		{SKU: "OLD", ScannedAt: &t1},
		{SKU: "NO-2"},
		{SKU: "NEW", ScannedAt: &t2},
	}
	out := audit.SortForDisplay(items)
	got := []string{out[0].SKU, out[1].SKU, out[2].SKU, out[3].SKU}
	assert.Equal(t, []string{"NEW", "OLD", "NO-1", "NO-2"}, got)
	assert.Equal(t, "NO-1", items[0].SKU, "no debe reordenar la lista original")
}
