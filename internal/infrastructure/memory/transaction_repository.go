package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

// TransactionRepo implementa repository.InventoryTransactionRepository (append-only).
type TransactionRepo struct {
	s *Store
	u *unitOfWork
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	cp := copyTransaction(t)
	if r.u != nil {
		r.u.txs = append(r.u.txs, cp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.txs = append(r.s.txs, cp)
	return nil
}

func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, int, error) {
	r.s.mu.Lock()
	matched := make([]*entity.InventoryTransaction, 0, len(r.s.txs))
	// Recorrido inverso: a igual fecha, el último confirmado va primero.
	for i := len(r.s.txs) - 1; i >= 0; i-- {
		t := r.s.txs[i]
		if f.From != nil && t.TransactionDate.Before(*f.From) {
			continue
		}
		if f.To != nil && t.TransactionDate.After(*f.To) {
			continue
		}
		matched = append(matched, copyTransaction(t))
	}
	r.s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].TransactionDate.After(matched[j].TransactionDate)
	})
	total := len(matched)
	return paginate(matched, f.Limit, f.Offset), total, nil
}

func copyTransaction(t *entity.InventoryTransaction) *entity.InventoryTransaction {
	cp := *t
	cp.FromDealerID = cloneInt64(t.FromDealerID)
	cp.ToDealerID = cloneInt64(t.ToDealerID)
	return &cp
}

// paginate Limit 0 = sin límite. Un offset negativo devuelve una página vacía.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
