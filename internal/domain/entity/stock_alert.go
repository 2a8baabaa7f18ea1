package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStockCentral = "LOW_STOCK_CENTRAL"
	AlertTypeLowStockDealer  = "LOW_STOCK_DEALER"
)

// Estados de alerta. Solo NEW lo asigna este servicio; el resto lo maneja el flujo externo de resolución.
const (
	AlertStatusNew          = "NEW"
	AlertStatusAcknowledged = "ACKNOWLEDGED"
	AlertStatusResolved     = "RESOLVED"
)

// StockAlert alerta de stock bajo. DealerID nil = bodega central.
// A lo sumo una alerta NEW por (VariantID, DealerID).
type StockAlert struct {
	ID           string
	VariantID    int64
	DealerID     *int64
	AlertType    string
	CurrentStock int
	Threshold    int
	Status       string
	CreatedAt    time.Time
}
