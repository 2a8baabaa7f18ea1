package entity

// Estados de stock derivados de CentralInventory (filtro de listados).
const (
	StockStatusInStock    = "IN_STOCK"
	StockStatusLowStock   = "LOW_STOCK"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// IsValidStockStatus valida el filtro de estado recibido desde la API.
func IsValidStockStatus(s string) bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}
