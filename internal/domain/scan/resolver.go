// Package scan resuelve la lectura cruda de un escáner de código de barras
// contra el inventario teórico cargado.
//
// Formatos aceptados, en este orden (gana el primero que coincide):
//
//	CODIGO          → cantidad 1
//	CODIGO CANT     → separador: último espacio
//	CANT*CODIGO     → un único asterisco, cantidad a la izquierda
//	CODIGO*CANT     → un único asterisco, cantidad a la derecha
//
// El resolvedor es una función pura: no muta la lista recibida.
package scan

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/auditpro-api/internal/domain/entity"
)

// MatchResult resultado de resolver una lectura.
// Si Found es false, RawInput contiene la lectura recortada para mostrarla al operador.
type MatchResult struct {
	Found         bool
	Index         int
	QuantityDelta int
	RawInput      string
}

// NotFound construye el resultado "código no encontrado".
func NotFound(raw string) MatchResult {
	return MatchResult{Found: false, Index: -1, RawInput: raw}
}

func matched(index, qty int, raw string) MatchResult {
	return MatchResult{Found: true, Index: index, QuantityDelta: qty, RawInput: raw}
}

// strategy intenta interpretar input; ok=false deja pasar a la siguiente.
type strategy func(items []entity.InventoryItem, input string) (MatchResult, bool)

var strategies = []strategy{
	exactMatch,
	spaceSeparatedQuantity,
	asteriskSeparatedQuantity,
}

// Resolve mapea una lectura del escáner a una línea del inventario y la cantidad a sumar.
// Una lectura vacía o solo con espacios devuelve NotFound; los llamadores deben evitarla.
func Resolve(items []entity.InventoryItem, raw string) MatchResult {
	input := strings.TrimSpace(raw)
	if input == "" {
		return NotFound(input)
	}
	for _, try := range strategies {
		if res, ok := try(items, input); ok {
			return res
		}
	}
	return NotFound(input)
}

// Apply suma la cantidad del resultado a la línea encontrada y la devuelve.
// Muta solo el elemento items[res.Index]; con un resultado no encontrado no hace nada.
// Tampoco aplica (ok=false) si el conteo superaría entity.MaxQuantity.
func Apply(items []entity.InventoryItem, res MatchResult, now time.Time) (entity.InventoryItem, bool) {
	if !res.Found || res.Index < 0 || res.Index >= len(items) {
		return entity.InventoryItem{}, false
	}
	if !items[res.Index].CanRegister(res.QuantityDelta) {
		return items[res.Index], false
	}
	items[res.Index].RegisterCount(res.QuantityDelta, now)
	return items[res.Index], true
}

// FindIndex busca por SKU o por ID con igualdad en minúsculas (nunca "contiene").
// Compara strings.ToLower de ambos lados; no aplica plegado Unicode (ſ no equivale a s).
func FindIndex(items []entity.InventoryItem, code string) int {
	want := strings.ToLower(code)
	for i := range items {
		if strings.ToLower(items[i].SKU) == want || strings.ToLower(items[i].ID) == want {
			return i
		}
	}
	return -1
}

func exactMatch(items []entity.InventoryItem, input string) (MatchResult, bool) {
	idx := FindIndex(items, input)
	if idx == -1 {
		return MatchResult{}, false
	}
	return matched(idx, 1, input), true
}

// "ITEM NAME 123 50" → código "ITEM NAME 123", cantidad 50.
func spaceSeparatedQuantity(items []entity.InventoryItem, input string) (MatchResult, bool) {
	cut := strings.LastIndex(input, " ")
	if cut == -1 {
		return MatchResult{}, false
	}
	return codeWithQuantity(items, input, input[:cut], input[cut+1:])
}

func asteriskSeparatedQuantity(items []entity.InventoryItem, input string) (MatchResult, bool) {
	if !strings.Contains(input, "*") {
		return MatchResult{}, false
	}
	parts := strings.Split(input, "*")
	if len(parts) != 2 {
		return MatchResult{}, false
	}
	// CANT*CODIGO se prueba antes que CODIGO*CANT; con SKU numérico en ambos lados gana el primero.
	if res, ok := codeWithQuantity(items, input, parts[1], parts[0]); ok {
		return res, true
	}
	return codeWithQuantity(items, input, parts[0], parts[1])
}

func codeWithQuantity(items []entity.InventoryItem, input, code, qtyToken string) (MatchResult, bool) {
	qty, ok := parseQuantity(qtyToken)
	if !ok {
		return MatchResult{}, false
	}
	idx := FindIndex(items, code)
	if idx == -1 {
		return MatchResult{}, false
	}
	return matched(idx, qty, input), true
}

// parseQuantity acepta solo una secuencia no vacía de dígitos ASCII hasta entity.MaxQuantity.
// Cero es válido y se devuelve tal cual.
func parseQuantity(s string) (int, bool) {
	if !IsDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > entity.MaxQuantity {
		return 0, false
	}
	return n, true
}

// IsDigits rechaza vacío, signos, punto decimal y espacios.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
