package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo ledger append-only: solo INSERT y SELECT.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta un registro en inventory_transactions.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, variant_id, transaction_type, quantity,
			from_dealer_id, to_dealer_id, staff_id, notes, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.VariantID, string(t.Type), t.Quantity,
		t.FromDealerID, t.ToDealerID, t.StaffID, t.Notes, t.TransactionDate,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// List filtra por rango de fechas (inclusive) y pagina en SQL; más reciente primero.
func (r *InventoryTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, int, error) {
	var where []string
	var args []any
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("transaction_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("transaction_date <= $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_transactions`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory transactions: %w", err)
	}

	query := `
		SELECT id, variant_id, transaction_type, quantity, from_dealer_id, to_dealer_id,
			staff_id, COALESCE(notes, ''), transaction_date
		FROM inventory_transactions` + cond + `
		ORDER BY transaction_date DESC, seq DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var typ string
		if err := rows.Scan(
			&t.ID, &t.VariantID, &typ, &t.Quantity, &t.FromDealerID, &t.ToDealerID,
			&t.StaffID, &t.Notes, &t.TransactionDate,
		); err != nil {
			return nil, 0, err
		}
		t.Type = entity.TransactionType(typ)
		list = append(list, &t)
	}
	return list, total, rows.Err()
}
