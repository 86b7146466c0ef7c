package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAuditRequest campos de formulario de POST /api/audits (el Excel va como archivo "file").
type CreateAuditRequest struct {
	StoreName    string `json:"store_name" form:"store_name"`
	Observations string `json:"observations" form:"observations"`
}

// ScanRequest body para POST /api/audits/:id/scan.
type ScanRequest struct {
	Input string `json:"input"`
}

// ScanResponse resultado de un escaneo. Found=false no es un error HTTP: el operador corrige y reescanea.
type ScanResponse struct {
	Found         bool     `json:"found"`
	QuantityAdded int      `json:"quantity_added"`
	Item          *ItemDTO `json:"item,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// FinishAuditRequest body opcional para POST /api/audits/:id/finish.
type FinishAuditRequest struct {
	Observations *string `json:"observations,omitempty"`
}

// ItemDTO línea del inventario con su diferencia.
type ItemDTO struct {
	ID             string     `json:"id"`
	SKU            string     `json:"sku"`
	Description    string     `json:"description"`
	TheoreticalQty int        `json:"theoretical_qty"`
	PhysicalQty    int        `json:"physical_qty"`
	Difference     int        `json:"difference"`
	ScannedAt      *time.Time `json:"scanned_at,omitempty"`
}

// ProgressDTO avance de la toma física.
type ProgressDTO struct {
	TotalItems    int `json:"total_items"`
	TotalPhysical int `json:"total_physical"`
	ScannedLines  int `json:"scanned_lines"`
	ProgressPct   int `json:"progress_pct"`
}

// AuditResponse cabecera de una sesión de auditoría.
type AuditResponse struct {
	ID           string      `json:"id"`
	StoreName    string      `json:"store_name"`
	AuditorName  string      `json:"auditor_name"`
	Date         time.Time   `json:"date"`
	Observations string      `json:"observations"`
	Status       string      `json:"status"`
	Progress     ProgressDTO `json:"progress"`
}

// ItemListResponse líneas filtradas y ordenadas para la tabla de la toma.
type ItemListResponse struct {
	Total int       `json:"total"`
	Query string    `json:"query,omitempty"`
	Items []ItemDTO `json:"items"`
}

// ReportResponse informe de discrepancias.
type ReportResponse struct {
	Audit              AuditResponse   `json:"audit"`
	TotalItems         int             `json:"total_items"`
	TotalDiscrepancies int             `json:"total_discrepancies"`
	AccuracyPct        decimal.Decimal `json:"accuracy_pct"`
	Lines              []ItemDTO       `json:"lines"`
}

// HistoryEntryDTO elemento del historial reciente.
type HistoryEntryDTO struct {
	ID                 string          `json:"id"`
	StoreName          string          `json:"store_name"`
	Date               time.Time       `json:"date"`
	AuditorName        string          `json:"auditor_name"`
	TotalItems         int             `json:"total_items"`
	TotalDiscrepancies int             `json:"total_discrepancies"`
	AccuracyPct        decimal.Decimal `json:"accuracy_pct"`
}
