package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

var _ repository.CentralInventoryRepository = (*CentralInventoryRepo)(nil)

const centralColumns = `variant_id, total_quantity, available_quantity, allocated_quantity, reorder_level, updated_at`

// CentralInventoryRepo implementación de CentralInventoryRepository sobre PostgreSQL (usable con pool o tx).
type CentralInventoryRepo struct {
	q Querier
}

// NewCentralInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCentralInventoryRepository(q Querier) *CentralInventoryRepo {
	return &CentralInventoryRepo{q: q}
}

// Get devuelve nil, nil si la variante no tiene fila.
func (r *CentralInventoryRepo) Get(ctx context.Context, variantID int64) (*entity.CentralInventory, error) {
	query := `SELECT ` + centralColumns + ` FROM central_inventory WHERE variant_id = $1`
	c, err := scanCentral(r.q.QueryRow(ctx, query, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get central inventory: %w", err)
	}
	return c, nil
}

// LockForUpdate crea la fila en cero si no existe (ON CONFLICT DO NOTHING) y la bloquea (SELECT FOR UPDATE).
// Si la tx se revierte, la fila creada también desaparece.
func (r *CentralInventoryRepo) LockForUpdate(ctx context.Context, variantID int64) (*entity.CentralInventory, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO central_inventory (variant_id, total_quantity, available_quantity, allocated_quantity, updated_at)
		VALUES ($1, 0, 0, 0, now())
		ON CONFLICT (variant_id) DO NOTHING`, variantID)
	if err != nil {
		return nil, fmt.Errorf("ensure central inventory: %w", err)
	}
	query := `SELECT ` + centralColumns + ` FROM central_inventory WHERE variant_id = $1 FOR UPDATE`
	c, err := scanCentral(r.q.QueryRow(ctx, query, variantID))
	if err != nil {
		return nil, fmt.Errorf("lock central inventory: %w", err)
	}
	return c, nil
}

// SaveQuantities actualiza solo cantidades; reorder_level queda intacto.
func (r *CentralInventoryRepo) SaveQuantities(ctx context.Context, c *entity.CentralInventory) error {
	query := `
		UPDATE central_inventory
		SET total_quantity = $2, available_quantity = $3, allocated_quantity = $4, updated_at = $5
		WHERE variant_id = $1`
	tag, err := r.q.Exec(ctx, query, c.VariantID, c.TotalQuantity, c.AvailableQuantity, c.AllocatedQuantity, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save central inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save central inventory %d: %w", c.VariantID, domain.ErrNotFound)
	}
	return nil
}

// UpdateReorderLevel solo escribe la columna reorder_level.
func (r *CentralInventoryRepo) UpdateReorderLevel(ctx context.Context, variantID int64, level *int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE central_inventory SET reorder_level = $2 WHERE variant_id = $1`, variantID, level)
	if err != nil {
		return fmt.Errorf("update central reorder level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBelowReorderLevel filas con umbral definido y disponible por debajo.
func (r *CentralInventoryRepo) ListBelowReorderLevel(ctx context.Context) ([]*entity.CentralInventory, error) {
	query := `SELECT ` + centralColumns + ` FROM central_inventory
		WHERE reorder_level IS NOT NULL AND available_quantity < reorder_level
		ORDER BY variant_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list central below reorder: %w", err)
	}
	defer rows.Close()
	var list []*entity.CentralInventory
	for rows.Next() {
		c, err := scanCentral(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCentral(row pgx.Row) (*entity.CentralInventory, error) {
	var c entity.CentralInventory
	if err := row.Scan(
		&c.VariantID, &c.TotalQuantity, &c.AvailableQuantity, &c.AllocatedQuantity, &c.ReorderLevel, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
