package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// CentralRepo implementa repository.CentralInventoryRepository. Con u != nil opera dentro de una tx.
type CentralRepo struct {
	s *Store
	u *unitOfWork
}

func (r *CentralRepo) Get(ctx context.Context, variantID int64) (*entity.CentralInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.central[variantID]
	if !ok || !row.exists {
		return nil, nil
	}
	return copyCentral(row.data), nil
}

// LockForUpdate crea la fila en estado cero si no existe y la bloquea hasta el fin de la tx.
func (r *CentralRepo) LockForUpdate(ctx context.Context, variantID int64) (*entity.CentralInventory, error) {
	if r.u == nil {
		return nil, errTxRequired
	}
	if pending, ok := r.u.central[variantID]; ok {
		c := *pending
		return &c, nil
	}

	r.s.mu.Lock()
	row, ok := r.s.central[variantID]
	if !ok {
		row = &centralRow{lock: newRowLock(), data: entity.NewCentralInventory(variantID)}
		r.s.central[variantID] = row
	}
	r.s.mu.Unlock()

	if _, held := r.u.lockedC[variantID]; !held {
		if err := row.lock.acquire(ctx); err != nil {
			return nil, err
		}
		r.u.lockedC[variantID] = row
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyCentral(row.data), nil
}

func (r *CentralRepo) SaveQuantities(ctx context.Context, c *entity.CentralInventory) error {
	if r.u != nil {
		if _, held := r.u.lockedC[c.VariantID]; !held {
			return errTxRequired
		}
		cp := *c
		r.u.central[c.VariantID] = &cp
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.central[c.VariantID]
	if !ok {
		row = &centralRow{lock: newRowLock(), data: entity.NewCentralInventory(c.VariantID)}
		r.s.central[c.VariantID] = row
	}
	row.exists = true
	row.data.TotalQuantity = c.TotalQuantity
	row.data.AvailableQuantity = c.AvailableQuantity
	row.data.AllocatedQuantity = c.AllocatedQuantity
	row.data.UpdatedAt = c.UpdatedAt
	return nil
}

func (r *CentralRepo) UpdateReorderLevel(ctx context.Context, variantID int64, level *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.central[variantID]
	if !ok || !row.exists {
		return domain.ErrNotFound
	}
	row.data.ReorderLevel = cloneInt(level)
	return nil
}

func (r *CentralRepo) ListBelowReorderLevel(ctx context.Context) ([]*entity.CentralInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CentralInventory
	for _, row := range r.s.central {
		if row.exists && row.data.BelowReorderLevel() {
			out = append(out, copyCentral(row.data))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return out, nil
}

func copyCentral(c entity.CentralInventory) *entity.CentralInventory {
	c.ReorderLevel = cloneInt(c.ReorderLevel)
	return &c
}
