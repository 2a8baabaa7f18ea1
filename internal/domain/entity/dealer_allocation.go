package entity

import "time"

// DealerAllocation stock de una variante asignado a un concesionario.
type DealerAllocation struct {
	VariantID         int64
	DealerID          int64
	AllocatedQuantity int // total en poder del concesionario
	AvailableQuantity int // subconjunto aún vendible
	ReorderLevel      *int
	UpdatedAt         time.Time
}

// NewDealerAllocation devuelve el estado cero de un par (variante, concesionario) nunca visto.
func NewDealerAllocation(variantID, dealerID int64) DealerAllocation {
	return DealerAllocation{VariantID: variantID, DealerID: dealerID}
}

// BelowReorderLevel indica si el disponible del concesionario cayó por debajo de su umbral.
func (d DealerAllocation) BelowReorderLevel() bool {
	return d.ReorderLevel != nil && d.AvailableQuantity < *d.ReorderLevel
}
