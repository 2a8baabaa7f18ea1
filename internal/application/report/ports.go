package report

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// TypeTotals movimientos y unidades de un tipo de transacción dentro del período.
type TypeTotals struct {
	Type  entity.TransactionType
	Count int
	Units int
}

// Data lo que recibe un generador: el ledger del período ya ordenado (más reciente primero)
// y un resumen por tipo.
type Data struct {
	From         time.Time
	To           time.Time
	GeneratedAt  time.Time
	Transactions []*entity.InventoryTransaction
	Totals       []TypeTotals
}

// Generator renderiza Data en un formato concreto (SpreadsheetML, CSV, PDF).
type Generator interface {
	Generate(ctx context.Context, data Data) ([]byte, error)
	ContentType() string
	Extension() string
}
