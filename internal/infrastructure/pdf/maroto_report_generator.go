// Package pdf genera el informe de auditoría de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Informe de Auditoría de Inventario    │ Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Tienda / Auditor / Observaciones                    │
//	│  RESUMEN: Total ítems | Discrepancias | Exactitud | Unid.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Teórico | Físico | Diferencia   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/auditpro-api/internal/application/audit"
	auditdomain "github.com/jhoicas/auditpro-api/internal/domain/audit"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// ReportTitle título del documento.
const ReportTitle = "Informe de Auditoría de Inventario"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 200, Green: 30, Blue: 30}
	colorGreen   = &props.Color{Red: 20, Green: 130, Blue: 60}
	colorStripe  = &props.Color{Red: 242, Green: 245, Blue: 249}
)

var _ audit.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa audit.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el informe con todas las líneas de session.Items y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(
	_ context.Context,
	session *entity.AuditSession,
	summary auditdomain.Summary,
) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("pdf: sesión nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(ReportTitle, true).
		WithAuthor(session.AuditorName, true).
		WithSubject(session.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metadataRow(session))
	m.AddRows(statsRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(session.Items)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(session *entity.AuditSession) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(ReportTitle, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+session.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func metadataRow(session *entity.AuditSession) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("Tienda: "+session.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 2,
			}),
			text.New("Auditor: "+session.AuditorName, props.Text{Size: 9, Top: 8}),
			text.New("Observaciones: "+nonEmpty(session.Observations, "—"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
	)
}

func statsRow(s auditdomain.Summary) core.Row {
	stat := func(label, value string, valueColor *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: valueColor, Top: 5,
			}),
		)
	}
	discColor := colorGreen
	if s.TotalDiscrepancies > 0 {
		discColor = colorRed
	}
	return row.New(14).Add(
		stat("TOTAL ÍTEMS", formatThousands(s.TotalItems), colorPrimary),
		stat("DISCREPANCIAS", formatThousands(s.TotalDiscrepancies), discColor),
		stat("EXACTITUD", s.AccuracyPct.StringFixed(2)+"%", colorPrimary),
		stat("UNIDADES FÍSICO / TEÓRICO",
			formatThousands(s.TotalPhysical)+" / "+formatThousands(s.TotalTheoretical), colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Teórico", 2, align.Right),
		h("Físico", 2, align.Right),
		h("Diferencia", 2, align.Right),
	)
}

// tableRows: una fila por línea; diferencia negativa en rojo, positiva en verde.
func tableRows(items []entity.InventoryItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		diff := it.Difference()
		r := row.New(6).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatThousands(it.TheoreticalQty), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(formatThousands(it.PhysicalQty), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(signed(diff), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
				Color: diffColor(diff),
			})),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func diffColor(diff int) *props.Color {
	switch {
	case diff < 0:
		return colorRed
	case diff > 0:
		return colorGreen
	}
	return nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// signed antepone "+" a las diferencias positivas.
func signed(n int) string {
	if n > 0 {
		return "+" + formatThousands(n)
	}
	return formatThousands(n)
}

// formatThousands inserta puntos de miles.
// Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatThousands(v int) string {
	s := strconv.Itoa(v)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
