package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

// QueryRepo implementa repository.InventoryQueryRepository con la misma semántica que el SQL:
// filtros AND, orden por variante, total antes de paginar.
type QueryRepo struct {
	s *Store
}

func (r *QueryRepo) ListCentral(ctx context.Context, f repository.InventoryListFilter) ([]*entity.CentralInventory, int, error) {
	var ids map[int64]struct{}
	if f.VariantIDs != nil {
		ids = make(map[int64]struct{}, len(f.VariantIDs))
		for _, id := range f.VariantIDs {
			ids[id] = struct{}{}
		}
	}

	r.s.mu.Lock()
	var matched []*entity.CentralInventory
	for id, row := range r.s.central {
		if !row.exists {
			continue
		}
		if ids != nil {
			if _, ok := ids[id]; !ok {
				continue
			}
		}
		if f.DealerID != nil {
			d, ok := r.s.dealers[dealerKey{variantID: id, dealerID: *f.DealerID}]
			if !ok || !d.exists {
				continue
			}
		}
		if f.Status != "" && row.data.StockStatus() != f.Status {
			continue
		}
		matched = append(matched, copyCentral(row.data))
	}
	r.s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].VariantID < matched[j].VariantID })
	total := len(matched)
	return paginate(matched, f.Limit, f.Offset), total, nil
}
