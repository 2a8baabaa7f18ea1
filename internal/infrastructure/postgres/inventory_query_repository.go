package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

var _ repository.InventoryQueryRepository = (*InventoryQueryRepo)(nil)

// InventoryQueryRepo listado paginado de central_inventory con filtros resueltos en SQL.
type InventoryQueryRepo struct {
	q Querier
}

// NewInventoryQueryRepository construye el adaptador.
func NewInventoryQueryRepository(q Querier) *InventoryQueryRepo {
	return &InventoryQueryRepo{q: q}
}

// ListCentral aplica filtros (AND), cuenta el total y pagina con LIMIT/OFFSET.
func (r *InventoryQueryRepo) ListCentral(ctx context.Context, f repository.InventoryListFilter) ([]*entity.CentralInventory, int, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.VariantIDs != nil {
		where = append(where, "c.variant_id = ANY("+arg(f.VariantIDs)+")")
	}
	if f.DealerID != nil {
		where = append(where, `EXISTS (SELECT 1 FROM dealer_allocations d
			WHERE d.variant_id = c.variant_id AND d.dealer_id = `+arg(*f.DealerID)+`)`)
	}
	switch f.Status {
	case entity.StockStatusOutOfStock:
		where = append(where, "c.available_quantity <= 0")
	case entity.StockStatusLowStock:
		where = append(where, "c.available_quantity > 0 AND c.reorder_level IS NOT NULL AND c.available_quantity < c.reorder_level")
	case entity.StockStatusInStock:
		where = append(where, "c.available_quantity > 0 AND (c.reorder_level IS NULL OR c.available_quantity >= c.reorder_level)")
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM central_inventory c`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}

	query := `SELECT c.variant_id, c.total_quantity, c.available_quantity, c.allocated_quantity, c.reorder_level, c.updated_at
		FROM central_inventory c` + cond + ` ORDER BY c.variant_id`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.CentralInventory
	for rows.Next() {
		c, err := scanCentral(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
