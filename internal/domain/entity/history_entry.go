package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry resumen de una auditoría guardada; se conservan solo las más recientes.
type HistoryEntry struct {
	ID                 string          // ID de la sesión
	StoreName          string
	Date               time.Time
	AuditorName        string
	TotalItems         int
	TotalDiscrepancies int
	AccuracyPct        decimal.Decimal // % de líneas sin diferencia
}
