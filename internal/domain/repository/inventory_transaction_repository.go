package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// TransactionFilter rango de fechas (inclusive) y paginación. Limit 0 = sin límite.
type TransactionFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// InventoryTransactionRepository puerto del ledger append-only: no existe Update ni Delete.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	// List ordena de más reciente a más antiguo y devuelve además el total sin paginar.
	List(ctx context.Context, f TransactionFilter) ([]*entity.InventoryTransaction, int, error)
}
