package entity

import "time"

// TransactionType tipo de movimiento del ledger.
type TransactionType string

// Tipos de movimiento soportados.
const (
	TransactionTypeRestock          TransactionType = "RESTOCK"            // entrada a bodega central
	TransactionTypeTransferToDealer TransactionType = "TRANSFER_TO_DEALER" // central -> concesionario
	TransactionTypeSale             TransactionType = "SALE"               // venta en concesionario
)

// InventoryTransaction registro inmutable del ledger. Nunca se edita ni se elimina.
// FromDealerID / ToDealerID nil significan bodega central.
type InventoryTransaction struct {
	ID              string
	VariantID       int64
	Type            TransactionType
	Quantity        int
	FromDealerID    *int64
	ToDealerID      *int64
	StaffID         int64
	Notes           string
	TransactionDate time.Time
}
