package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

var _ repository.DealerAllocationRepository = (*DealerAllocationRepo)(nil)

const dealerColumns = `variant_id, dealer_id, allocated_quantity, available_quantity, reorder_level, updated_at`

// DealerAllocationRepo implementación de DealerAllocationRepository sobre PostgreSQL.
type DealerAllocationRepo struct {
	q Querier
}

// NewDealerAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealerAllocationRepository(q Querier) *DealerAllocationRepo {
	return &DealerAllocationRepo{q: q}
}

// LockForUpdate crea el par (variante, concesionario) en cero si no existe y lo bloquea.
func (r *DealerAllocationRepo) LockForUpdate(ctx context.Context, variantID, dealerID int64) (*entity.DealerAllocation, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO dealer_allocations (variant_id, dealer_id, allocated_quantity, available_quantity, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (variant_id, dealer_id) DO NOTHING`, variantID, dealerID)
	if err != nil {
		return nil, fmt.Errorf("ensure dealer allocation: %w", err)
	}
	query := `SELECT ` + dealerColumns + ` FROM dealer_allocations
		WHERE variant_id = $1 AND dealer_id = $2 FOR UPDATE`
	d, err := scanDealer(r.q.QueryRow(ctx, query, variantID, dealerID))
	if err != nil {
		return nil, fmt.Errorf("lock dealer allocation: %w", err)
	}
	return d, nil
}

// SaveQuantities actualiza solo cantidades.
func (r *DealerAllocationRepo) SaveQuantities(ctx context.Context, d *entity.DealerAllocation) error {
	query := `
		UPDATE dealer_allocations
		SET allocated_quantity = $3, available_quantity = $4, updated_at = $5
		WHERE variant_id = $1 AND dealer_id = $2`
	tag, err := r.q.Exec(ctx, query, d.VariantID, d.DealerID, d.AllocatedQuantity, d.AvailableQuantity, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save dealer allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

// ListByVariants asignaciones de las variantes indicadas, en un solo query (= ANY).
func (r *DealerAllocationRepo) ListByVariants(ctx context.Context, variantIDs []int64) ([]*entity.DealerAllocation, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + dealerColumns + ` FROM dealer_allocations
		WHERE variant_id = ANY($1)
		ORDER BY variant_id, dealer_id`
	return r.list(ctx, query, variantIDs)
}

// UpdateReorderLevel nunca crea la asignación.
func (r *DealerAllocationRepo) UpdateReorderLevel(ctx context.Context, variantID, dealerID int64, level *int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE dealer_allocations SET reorder_level = $3 WHERE variant_id = $1 AND dealer_id = $2`,
		variantID, dealerID, level)
	if err != nil {
		return fmt.Errorf("update dealer reorder level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

func (r *DealerAllocationRepo) ListBelowReorderLevel(ctx context.Context) ([]*entity.DealerAllocation, error) {
	query := `SELECT ` + dealerColumns + ` FROM dealer_allocations
		WHERE reorder_level IS NOT NULL AND available_quantity < reorder_level
		ORDER BY variant_id, dealer_id`
	return r.list(ctx, query)
}

func (r *DealerAllocationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.DealerAllocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dealer allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.DealerAllocation
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDealer(row pgx.Row) (*entity.DealerAllocation, error) {
	var d entity.DealerAllocation
	if err := row.Scan(
		&d.VariantID, &d.DealerID, &d.AllocatedQuantity, &d.AvailableQuantity, &d.ReorderLevel, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
