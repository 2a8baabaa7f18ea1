// Package memory implementa los puertos de persistencia en memoria, con bloqueo por fila y
// escrituras diferidas hasta el Commit. Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

var errTxRequired = errors.New("memory: LockForUpdate requiere una transacción")

// rowLock semáforo de una fila; admite cancelación por ctx mientras se espera.
type rowLock chan struct{}

func newRowLock() rowLock { return make(rowLock, 1) }

func (l rowLock) acquire(ctx context.Context) error {
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l rowLock) release() { <-l }

type centralRow struct {
	lock   rowLock
	exists bool // false mientras la fila solo fue creada por una tx sin confirmar
	data   entity.CentralInventory
}

type dealerKey struct {
	variantID int64
	dealerID  int64
}

type dealerRow struct {
	lock   rowLock
	exists bool
	data   entity.DealerAllocation
}

// Store estado completo del ledger en memoria. Seguro para uso concurrente.
type Store struct {
	mu      sync.Mutex
	central map[int64]*centralRow
	dealers map[dealerKey]*dealerRow
	txs     []*entity.InventoryTransaction
	alerts  []*entity.StockAlert
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		central: make(map[int64]*centralRow),
		dealers: make(map[dealerKey]*dealerRow),
	}
}

// Repositorios sin transacción (lecturas y escrituras de una sola fila).

func (s *Store) CentralRepository() *CentralRepo { return &CentralRepo{s: s} }

func (s *Store) DealerRepository() *DealerRepo { return &DealerRepo{s: s} }

func (s *Store) TransactionRepository() *TransactionRepo { return &TransactionRepo{s: s} }

func (s *Store) AlertRepository() *AlertRepo { return &AlertRepo{s: s} }

func (s *Store) QueryRepository() *QueryRepo { return &QueryRepo{s: s} }

// Run implementa inventory.TxRunner: los repositorios entregados a fn acumulan escrituras que
// solo se aplican si fn termina sin error. Los bloqueos de fila se liberan al final en ambos casos.
func (s *Store) Run(ctx context.Context, fn func(
	centralRepo repository.CentralInventoryRepository,
	dealerRepo repository.DealerAllocationRepository,
	txRepo repository.InventoryTransactionRepository,
) error) error {
	u := &unitOfWork{
		s:       s,
		central: make(map[int64]*entity.CentralInventory),
		dealers: make(map[dealerKey]*entity.DealerAllocation),
		lockedC: make(map[int64]*centralRow),
		lockedD: make(map[dealerKey]*dealerRow),
	}
	defer u.release()

	if err := fn(&CentralRepo{s: s, u: u}, &DealerRepo{s: s, u: u}, &TransactionRepo{s: s, u: u}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.commit()
	return nil
}

// unitOfWork escrituras pendientes y filas bloqueadas de una transacción.
type unitOfWork struct {
	s       *Store
	central map[int64]*entity.CentralInventory
	dealers map[dealerKey]*entity.DealerAllocation
	txs     []*entity.InventoryTransaction
	lockedC map[int64]*centralRow
	lockedD map[dealerKey]*dealerRow
}

func (u *unitOfWork) commit() {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for id, c := range u.central {
		row := u.lockedC[id]
		row.exists = true
		row.data.TotalQuantity = c.TotalQuantity
		row.data.AvailableQuantity = c.AvailableQuantity
		row.data.AllocatedQuantity = c.AllocatedQuantity
		row.data.UpdatedAt = c.UpdatedAt
	}
	for k, d := range u.dealers {
		row := u.lockedD[k]
		row.exists = true
		row.data.AllocatedQuantity = d.AllocatedQuantity
		row.data.AvailableQuantity = d.AvailableQuantity
		row.data.UpdatedAt = d.UpdatedAt
	}
	u.s.txs = append(u.s.txs, u.txs...)
}

func (u *unitOfWork) release() {
	for _, row := range u.lockedD {
		row.lock.release()
	}
	for _, row := range u.lockedC {
		row.lock.release()
	}
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

var (
	_ repository.CentralInventoryRepository     = (*CentralRepo)(nil)
	_ repository.DealerAllocationRepository     = (*DealerRepo)(nil)
	_ repository.InventoryTransactionRepository = (*TransactionRepo)(nil)
	_ repository.StockAlertRepository           = (*AlertRepo)(nil)
	_ repository.InventoryQueryRepository       = (*QueryRepo)(nil)
)
