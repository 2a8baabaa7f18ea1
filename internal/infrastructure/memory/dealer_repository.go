package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// DealerRepo implementa repository.DealerAllocationRepository.
type DealerRepo struct {
	s *Store
	u *unitOfWork
}

func (r *DealerRepo) LockForUpdate(ctx context.Context, variantID, dealerID int64) (*entity.DealerAllocation, error) {
	if r.u == nil {
		return nil, errTxRequired
	}
	k := dealerKey{variantID: variantID, dealerID: dealerID}
	if pending, ok := r.u.dealers[k]; ok {
		d := *pending
		return &d, nil
	}

	r.s.mu.Lock()
	row, ok := r.s.dealers[k]
	if !ok {
		row = &dealerRow{lock: newRowLock(), data: entity.NewDealerAllocation(variantID, dealerID)}
		r.s.dealers[k] = row
	}
	r.s.mu.Unlock()

	if _, held := r.u.lockedD[k]; !held {
		if err := row.lock.acquire(ctx); err != nil {
			return nil, err
		}
		r.u.lockedD[k] = row
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyDealer(row.data), nil
}

func (r *DealerRepo) SaveQuantities(ctx context.Context, d *entity.DealerAllocation) error {
	k := dealerKey{variantID: d.VariantID, dealerID: d.DealerID}
	if r.u != nil {
		if _, held := r.u.lockedD[k]; !held {
			return errTxRequired
		}
		cp := *d
		r.u.dealers[k] = &cp
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.dealers[k]
	if !ok {
		row = &dealerRow{lock: newRowLock(), data: entity.NewDealerAllocation(d.VariantID, d.DealerID)}
		r.s.dealers[k] = row
	}
	row.exists = true
	row.data.AllocatedQuantity = d.AllocatedQuantity
	row.data.AvailableQuantity = d.AvailableQuantity
	row.data.UpdatedAt = d.UpdatedAt
	return nil
}

func (r *DealerRepo) ListByVariants(ctx context.Context, variantIDs []int64) ([]*entity.DealerAllocation, error) {
	want := make(map[int64]struct{}, len(variantIDs))
	for _, id := range variantIDs {
		want[id] = struct{}{}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.DealerAllocation
	for k, row := range r.s.dealers {
		if _, ok := want[k.variantID]; ok && row.exists {
			out = append(out, copyDealer(row.data))
		}
	}
	sortDealers(out)
	return out, nil
}

func (r *DealerRepo) UpdateReorderLevel(ctx context.Context, variantID, dealerID int64, level *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.dealers[dealerKey{variantID: variantID, dealerID: dealerID}]
	if !ok || !row.exists {
		return domain.ErrAllocationNotFound
	}
	row.data.ReorderLevel = cloneInt(level)
	return nil
}

func (r *DealerRepo) ListBelowReorderLevel(ctx context.Context) ([]*entity.DealerAllocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.DealerAllocation
	for _, row := range r.s.dealers {
		if row.exists && row.data.BelowReorderLevel() {
			out = append(out, copyDealer(row.data))
		}
	}
	sortDealers(out)
	return out, nil
}

func copyDealer(d entity.DealerAllocation) *entity.DealerAllocation {
	d.ReorderLevel = cloneInt(d.ReorderLevel)
	return &d
}

func sortDealers(out []*entity.DealerAllocation) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].VariantID != out[j].VariantID {
			return out[i].VariantID < out[j].VariantID
		}
		return out[i].DealerID < out[j].DealerID
	})
}
