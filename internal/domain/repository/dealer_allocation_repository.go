package repository

import (
	"context"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// DealerAllocationRepository puerto de persistencia para asignaciones por concesionario.
type DealerAllocationRepository interface {
	// LockForUpdate obtiene (o crea dentro de la transacción) la fila (variante, concesionario) y la bloquea.
	LockForUpdate(ctx context.Context, variantID, dealerID int64) (*entity.DealerAllocation, error)
	SaveQuantities(ctx context.Context, d *entity.DealerAllocation) error
	// ListByVariants devuelve las asignaciones de todas las variantes indicadas, ordenadas por variante y concesionario.
	ListByVariants(ctx context.Context, variantIDs []int64) ([]*entity.DealerAllocation, error)
	// UpdateReorderLevel devuelve domain.ErrAllocationNotFound si el par no existe.
	UpdateReorderLevel(ctx context.Context, variantID, dealerID int64, level *int) error
	ListBelowReorderLevel(ctx context.Context) ([]*entity.DealerAllocation, error)
}
