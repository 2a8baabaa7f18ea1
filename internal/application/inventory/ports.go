package inventory

import (
	"context"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el registro del ledger y los saldos: si fn falla se hace Rollback de todo.
// Los conflictos transitorios (serialización, deadlock) se devuelven envolviendo domain.ErrConcurrencyConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		centralRepo repository.CentralInventoryRepository,
		dealerRepo repository.DealerAllocationRepository,
		txRepo repository.InventoryTransactionRepository,
	) error) error
}

// CatalogResolver colaborador externo: resuelve un texto libre a IDs de variante.
// Una lista vacía significa "sin coincidencias"; un error significa que el catálogo no respondió.
type CatalogResolver interface {
	ResolveVariantIDs(ctx context.Context, keyword string) ([]int64, error)
}

// AlertPublisher publica las alertas recién creadas (opcional).
type AlertPublisher interface {
	PublishStockAlert(ctx context.Context, alert *entity.StockAlert) error
}
