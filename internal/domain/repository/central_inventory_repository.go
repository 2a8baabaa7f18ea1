package repository

import (
	"context"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// CentralInventoryRepository puerto de persistencia para el stock de la bodega central.
type CentralInventoryRepository interface {
	// Get devuelve nil, nil si la variante no tiene registro.
	Get(ctx context.Context, variantID int64) (*entity.CentralInventory, error)
	// LockForUpdate obtiene (o crea dentro de la transacción, en estado cero) la fila y la bloquea
	// hasta el fin de la transacción. Solo válido con un repositorio atado a una tx.
	LockForUpdate(ctx context.Context, variantID int64) (*entity.CentralInventory, error)
	// SaveQuantities persiste únicamente las columnas de cantidades.
	SaveQuantities(ctx context.Context, c *entity.CentralInventory) error
	// UpdateReorderLevel devuelve domain.ErrNotFound si la variante no existe.
	UpdateReorderLevel(ctx context.Context, variantID int64, level *int) error
	// ListBelowReorderLevel filas con reorder_level no nulo y disponible < reorder_level.
	ListBelowReorderLevel(ctx context.Context) ([]*entity.CentralInventory, error)
}
