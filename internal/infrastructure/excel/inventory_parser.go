// Package excel lee el inventario teórico desde la primera hoja de un libro .xlsx.
package excel

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/auditpro-api/internal/application/audit"
	"github.com/jhoicas/auditpro-api/internal/domain"
	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// Valores por defecto cuando falta la columna o la celda.
const (
	UnknownSKU         = "UNKNOWN"
	DefaultDescription = "Sin descripción"
)

// Alias de encabezado en orden de prioridad, ya normalizados (sin tildes, minúsculas).
var (
	codeHeaders        = []string{"sku", "codigo", "code", "barcode"}
	descriptionHeaders = []string{"descripcion", "description", "nombre"}
	quantityHeaders    = []string{"cantidad", "qty", "teorico"}
)

var _ audit.InventoryParser = (*InventoryParser)(nil)

// InventoryParser implementa audit.InventoryParser con excelize.
type InventoryParser struct{}

// NewInventoryParser construye el parser.
func NewInventoryParser() *InventoryParser { return &InventoryParser{} }

// Parse toma la primera fila no vacía como encabezado y una línea por cada fila siguiente con datos.
// Errores de lectura o libro sin hojas → domain.ErrInvalidInput.
func (p *InventoryParser) Parse(ctx context.Context, r io.Reader) ([]entity.InventoryItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: archivo Excel ilegible: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: leer hoja %q: %v", domain.ErrInvalidInput, sheets[0], err)
	}

	var cols columnMap
	headerFound := false
	items := make([]entity.InventoryItem, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		if !headerFound {
			cols = mapHeader(row)
			headerFound = true
			continue
		}
		items = append(items, cols.item(row))
	}
	return items, nil
}

// columnMap índices de columna por alias, en orden de prioridad.
type columnMap struct {
	code        []int
	description []int
	quantity    []int
}

func mapHeader(header []string) columnMap {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeHeader(h)
		if _, dup := byName[key]; !dup && key != "" {
			byName[key] = i
		}
	}
	pick := func(aliases []string) []int {
		var idx []int
		for _, a := range aliases {
			if i, ok := byName[a]; ok {
				idx = append(idx, i)
			}
		}
		return idx
	}
	return columnMap{
		code:        pick(codeHeaders),
		description: pick(descriptionHeaders),
		quantity:    pick(quantityHeaders),
	}
}

// item arma la línea; por celda gana el primer alias con valor.
func (c columnMap) item(row []string) entity.InventoryItem {
	code := firstValue(row, c.code)
	it := entity.InventoryItem{
		ID:             code,
		SKU:            code,
		Description:    firstValue(row, c.description),
		TheoreticalQty: ParseQuantity(firstValue(row, c.quantity)),
	}
	if code == "" {
		it.ID = strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
		it.SKU = UnknownSKU
	}
	if it.Description == "" {
		it.Description = DefaultDescription
	}
	return it
}

func firstValue(row []string, idx []int) string {
	for _, i := range idx {
		if i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// ParseQuantity interpreta la cantidad teórica: decimal, parte entera, negativos a 0
// y valores mayores que entity.MaxQuantity recortados a ese tope.
// Texto no numérico o vacío → 0.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		d, err = decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return 0
		}
	}
	if d.IsNegative() {
		return 0
	}
	if d.GreaterThan(maxQuantity) {
		return entity.MaxQuantity
	}
	return int(d.IntPart())
}

var maxQuantity = decimal.NewFromInt(entity.MaxQuantity)

// NormalizeHeader quita tildes y espacios y pasa a minúsculas: " Descripción " → "descripcion".
// La cadena de transformación guarda estado; se arma una por llamada.
func NormalizeHeader(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
