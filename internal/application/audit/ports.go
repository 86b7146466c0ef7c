package audit

import (
	"context"
	"io"

	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada escaneo se aplica en una sola tx: leer líneas, resolver y actualizar la línea encontrada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sessionRepo repository.AuditSessionRepository,
		itemRepo repository.InventoryItemRepository,
	) error) error
}

// InventoryParser convierte la hoja de cálculo del inventario teórico en líneas.
// Las líneas devueltas tienen PhysicalQty = 0.
type InventoryParser interface {
	Parse(ctx context.Context, r io.Reader) ([]entity.InventoryItem, error)
}

// ReportPDFGenerator genera el informe de discrepancias en PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, session *entity.AuditSession, summary auditdomain.Summary) ([]byte, error)
}
