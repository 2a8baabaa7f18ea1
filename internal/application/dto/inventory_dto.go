package dto

import "time"

// ExecuteTransactionRequest body para POST /api/inventory/transactions.
type ExecuteTransactionRequest struct {
	VariantID       int64  `json:"variant_id"`
	TransactionType string `json:"transaction_type"`
	Quantity        int    `json:"quantity"`
	FromDealerID    *int64 `json:"from_dealer_id,omitempty"`
	ToDealerID      *int64 `json:"to_dealer_id,omitempty"`
	StaffID         int64  `json:"staff_id"`
	Notes           string `json:"notes,omitempty"`
}

// TransactionResponse registro del ledger expuesto por la API.
type TransactionResponse struct {
	TransactionID   string    `json:"transaction_id"`
	VariantID       int64     `json:"variant_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	FromDealerID    *int64    `json:"from_dealer_id"`
	ToDealerID      *int64    `json:"to_dealer_id"`
	StaffID         int64     `json:"staff_id"`
	Notes           string    `json:"notes,omitempty"`
	TransactionDate time.Time `json:"transaction_date"`
}

// TransactionHistoryResponse página del historial (más reciente primero).
type TransactionHistoryResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// DealerStockDTO stock de un concesionario para una variante.
type DealerStockDTO struct {
	DealerID     int64 `json:"dealer_id"`
	Allocated    int   `json:"allocated"`
	Available    int   `json:"available"`
	ReorderLevel *int  `json:"reorder_level,omitempty"`
}

// InventoryStatusDTO vista compuesta central + concesionarios de una variante.
type InventoryStatusDTO struct {
	VariantID        int64            `json:"variant_id"`
	CentralAvailable int              `json:"central_available"`
	CentralAllocated int              `json:"central_allocated"`
	TotalInSystem    int              `json:"total_in_system"`
	ReorderLevel     *int             `json:"reorder_level,omitempty"`
	Status           string           `json:"status"`
	DealerStock      []DealerStockDTO `json:"dealer_stock"`
}

// InventoryListResponse página de estados de inventario.
type InventoryListResponse struct {
	Items []InventoryStatusDTO `json:"items"`
	Page  PageResponse         `json:"page"`
}

// UpdateReorderLevelRequest body para PUT /api/inventory/:variantId/reorder-level.
// DealerID nil = umbral de la bodega central; ReorderLevel nil = quitar el umbral.
type UpdateReorderLevelRequest struct {
	DealerID     *int64 `json:"dealer_id,omitempty"`
	ReorderLevel *int   `json:"reorder_level"`
}

// StockAlertDTO alerta de stock bajo.
type StockAlertDTO struct {
	AlertID      string    `json:"alert_id"`
	VariantID    int64     `json:"variant_id"`
	DealerID     *int64    `json:"dealer_id"`
	AlertType    string    `json:"alert_type"`
	CurrentStock int       `json:"current_stock"`
	Threshold    int       `json:"threshold"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
