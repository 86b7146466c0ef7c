package entity

import (
	"math"
	"time"
)

// MaxQuantity tope de cualquier cantidad de una línea; coincide con la columna INTEGER.
const MaxQuantity = math.MaxInt32

// InventoryItem es una línea del inventario teórico cargado para una auditoría.
// PhysicalQty acumula lo escaneado; solo crece dentro de una sesión.
type InventoryItem struct {
	ID             string     // normalmente el mismo código que SKU o el código de barras
	SKU            string
	Description    string
	TheoreticalQty int        // cantidad esperada (>= 0)
	PhysicalQty    int        // cantidad contada (>= 0, inicia en 0)
	ScannedAt      *time.Time // último escaneo; nil si nunca se escaneó
	Position       int        // orden de carga dentro de la sesión
}

// Difference devuelve físico − teórico.
func (i InventoryItem) Difference() int {
	return i.PhysicalQty - i.TheoreticalQty
}

// HasDiscrepancy indica si la cantidad física difiere de la teórica.
func (i InventoryItem) HasDiscrepancy() bool {
	return i.PhysicalQty != i.TheoreticalQty
}

// CanRegister indica si sumar qty mantiene el conteo físico dentro de [0, MaxQuantity].
func (i InventoryItem) CanRegister(qty int) bool {
	return qty >= 0 && qty <= MaxQuantity-i.PhysicalQty
}

// RegisterCount suma qty al conteo físico y marca la hora del escaneo.
// Lo invoca quien aplica el resultado del resolvedor, nunca el resolvedor.
func (i *InventoryItem) RegisterCount(qty int, at time.Time) {
	i.PhysicalQty += qty
	t := at
	i.ScannedAt = &t
}
