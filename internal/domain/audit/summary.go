package audit

import (
	"sort"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary métricas de una toma física (servicio de dominio, sin I/O).
type Summary struct {
	TotalItems         int             // líneas del inventario teórico
	TotalTheoretical   int             // unidades esperadas
	TotalPhysical      int             // unidades contadas
	ScannedLines       int             // líneas con al menos una unidad contada
	TotalDiscrepancies int             // líneas donde físico != teórico
	ProgressPct        int             // % de líneas escaneadas, redondeado
	AccuracyPct        decimal.Decimal // % de líneas sin diferencia, 2 decimales
}

// Summarize calcula las métricas de la sesión.
// Progreso = líneas con físico > 0 / total; Exactitud = líneas sin diferencia / total.
func Summarize(items []entity.InventoryItem) Summary {
	var s Summary
	s.TotalItems = len(items)
	for _, it := range items {
		s.TotalTheoretical += it.TheoreticalQty
		s.TotalPhysical += it.PhysicalQty
		if it.PhysicalQty > 0 {
			s.ScannedLines++
		}
		if it.HasDiscrepancy() {
			s.TotalDiscrepancies++
		}
	}
	if s.TotalItems == 0 {
		s.AccuracyPct = decimal.Zero
		return s
	}
	total := decimal.NewFromInt(int64(s.TotalItems))
	s.ProgressPct = int(decimal.NewFromInt(int64(s.ScannedLines)).Mul(hundred).Div(total).Round(0).IntPart())
	matching := decimal.NewFromInt(int64(s.TotalItems - s.TotalDiscrepancies))
	s.AccuracyPct = matching.Mul(hundred).Div(total).Round(2)
	return s
}

// Discrepancies devuelve solo las líneas con diferencia, en el orden original.
func Discrepancies(items []entity.InventoryItem) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0)
	for _, it := range items {
		if it.HasDiscrepancy() {
			out = append(out, it)
		}
	}
	return out
}

// SortForDisplay ordena una copia: primero lo escaneado (más reciente primero),
// después lo no escaneado en orden de carga.
func SortForDisplay(items []entity.InventoryItem) []entity.InventoryItem {
	out := make([]entity.InventoryItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ScannedAt, out[j].ScannedAt
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil:
			return a.After(*b)
		}
		return false
	})
	return out
}
