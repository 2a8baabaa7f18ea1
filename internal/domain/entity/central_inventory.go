package entity

import "time"

// CentralInventory representa el stock de una variante en la bodega central.
// TotalQuantity = unidades en bodega + unidades ya asignadas a concesionarios.
type CentralInventory struct {
	VariantID         int64
	TotalQuantity     int
	AvailableQuantity int // en bodega central, vendible/transferible
	AllocatedQuantity int // transferido a concesionarios, aún contado en el total
	ReorderLevel      *int
	UpdatedAt         time.Time
}

// NewCentralInventory devuelve el estado cero de una variante nunca vista.
func NewCentralInventory(variantID int64) CentralInventory {
	return CentralInventory{VariantID: variantID}
}

// BelowReorderLevel indica si el disponible cayó por debajo del punto de reorden.
func (c CentralInventory) BelowReorderLevel() bool {
	return c.ReorderLevel != nil && c.AvailableQuantity < *c.ReorderLevel
}

// StockStatus estado derivado para listados.
func (c CentralInventory) StockStatus() string {
	switch {
	case c.AvailableQuantity <= 0:
		return StockStatusOutOfStock
	case c.BelowReorderLevel():
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
