package repository

import (
	"context"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// InventoryListFilter filtros del listado (AND). VariantIDs nil = sin filtro; vacío no se admite
// (el caso de uso corta antes con una página vacía).
type InventoryListFilter struct {
	VariantIDs []int64
	DealerID   *int64
	Status     string
	Limit      int
	Offset     int
}

// InventoryQueryRepository lecturas paginadas del inventario central, filtradas en la base de datos.
type InventoryQueryRepository interface {
	ListCentral(ctx context.Context, f InventoryListFilter) ([]*entity.CentralInventory, int, error)
}
