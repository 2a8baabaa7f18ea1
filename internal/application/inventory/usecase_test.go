package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/memory"
)

func id64(v int64) *int64 { return &v }

func restock(variant int64, qty int) inventory.TransactionInput {
	return inventory.TransactionInput{VariantID: variant, Type: string(entity.TransactionTypeRestock), Quantity: qty, StaffID: 1}
}

func transfer(variant, dealer int64, qty int) inventory.TransactionInput {
	return inventory.TransactionInput{VariantID: variant, Type: string(entity.TransactionTypeTransferToDealer), Quantity: qty, ToDealerID: id64(dealer), StaffID: 1}
}

func sale(variant, dealer int64, qty int) inventory.TransactionInput {
	return inventory.TransactionInput{VariantID: variant, Type: string(entity.TransactionTypeSale), Quantity: qty, FromDealerID: id64(dealer), ToDealerID: id64(dealer), StaffID: 1}
}

func newProcessor(s *memory.Store) *inventory.TransactionUseCase {
	return inventory.NewTransactionUseCase(s, inventory.RetryPolicy{MaxRetries: 3}, nil)
}

func newQuery(s *memory.Store, catalog inventory.CatalogResolver) *inventory.QueryUseCase {
	return inventory.NewQueryUseCase(
		s.CentralRepository(), s.DealerRepository(), s.QueryRepository(),
		s.TransactionRepository(), s.AlertRepository(), catalog,
	)
}

func logCount(t *testing.T, s *memory.Store) int {
	t.Helper()
	_, total, err := s.TransactionRepository().List(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	return total
}

func TestExecuteTransaction_RestockTransferSale(t *testing.T) {
	s := memory.NewStore()
	uc := newProcessor(s)
	ctx := context.Background()

	_, err := uc.ExecuteTransaction(ctx, restock(100, 50))
	require.NoError(t, err)
	_, err = uc.ExecuteTransaction(ctx, transfer(100, 1, 20))
	require.NoError(t, err)
	rec, err := uc.ExecuteTransaction(ctx, sale(100, 1, 5))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, entity.TransactionTypeSale, rec.Type)

	status, err := newQuery(s, nil).GetInventoryStatus(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 30, status.CentralAvailable)
	assert.Equal(t, 45, status.TotalInSystem)
	assert.Equal(t, 15, status.CentralAllocated)
	require.Len(t, status.DealerStock, 1)
	assert.Equal(t, dto.DealerStockDTO{DealerID: 1, Allocated: 15, Available: 15}, status.DealerStock[0])
	assert.Equal(t, status.TotalInSystem, status.CentralAvailable+status.DealerStock[0].Allocated)

	assert.Equal(t, 3, logCount(t, s))
}

func TestExecuteTransaction_StockInsuficienteNoDejaRastro(t *testing.T) {
	s := memory.NewStore()
	uc := newProcessor(s)
	ctx := context.Background()

	_, err := uc.ExecuteTransaction(ctx, restock(100, 10))
	require.NoError(t, err)

	_, err = uc.ExecuteTransaction(ctx, transfer(100, 1, 11))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	status, err := newQuery(s, nil).GetInventoryStatus(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, status.CentralAvailable)
	assert.Equal(t, 10, status.TotalInSystem)
	assert.Empty(t, status.DealerStock, "la asignación creada en la tx revertida no debe existir")
	assert.Equal(t, 1, logCount(t, s), "el ledger solo registra movimientos confirmados")

	_, err = uc.ExecuteTransaction(ctx, sale(100, 2, 1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, logCount(t, s))
}

func TestExecuteTransaction_ValidacionAntesDeEscribir(t *testing.T) {
	s := memory.NewStore()
	uc := newProcessor(s)
	ctx := context.Background()

	_, err := uc.ExecuteTransaction(ctx, inventory.TransactionInput{VariantID: 1, Type: string(entity.TransactionTypeSale), Quantity: 1})
	require.ErrorIs(t, err, domain.ErrDealerRequired)

	_, err = uc.ExecuteTransaction(ctx, restock(1, 0))
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.ExecuteTransaction(ctx, inventory.TransactionInput{VariantID: 1, Type: "RETURN", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)

	assert.Equal(t, 0, logCount(t, s))
}

func TestExecuteTransaction_ConcurrenciaNoSobreasigna(t *testing.T) {
	s := memory.NewStore()
	uc := newProcessor(s)
	ctx := context.Background()

	_, err := uc.ExecuteTransaction(ctx, restock(100, 10))
	require.NoError(t, err)

	// Dos concesionarios piden 5 a la vez, varias veces: solo 10 unidades pueden salir.
	const workers = 6
	var ok, insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.ExecuteTransaction(ctx, transfer(100, int64(i%2+1), 5))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(2), ok.Load())
	assert.Equal(t, int32(workers-2), insufficient.Load())

	status, err := newQuery(s, nil).GetInventoryStatus(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, status.CentralAvailable)
	assert.Equal(t, 10, status.CentralAllocated)
	sum := 0
	for _, d := range status.DealerStock {
		sum += d.Allocated
	}
	assert.Equal(t, 10, sum)
	assert.Equal(t, 3, logCount(t, s))
}

// flakyRunner devuelve ErrConcurrencyConflict las primeras n veces y luego delega.
type flakyRunner struct {
	inner    inventory.TxRunner
	failures int
	calls    int
}

func (f *flakyRunner) Run(ctx context.Context, fn func(
	repository.CentralInventoryRepository,
	repository.DealerAllocationRepository,
	repository.InventoryTransactionRepository,
) error) error {
	f.calls++
	if f.calls <= f.failures {
		return domain.ErrConcurrencyConflict
	}
	return f.inner.Run(ctx, fn)
}

func TestExecuteTransaction_ReintentaConflictos(t *testing.T) {
	s := memory.NewStore()
	runner := &flakyRunner{inner: s, failures: 2}
	uc := inventory.NewTransactionUseCase(runner, inventory.RetryPolicy{MaxRetries: 3}, nil)

	_, err := uc.ExecuteTransaction(context.Background(), restock(5, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, 1, logCount(t, s))
}

func TestExecuteTransaction_AgotaReintentos(t *testing.T) {
	s := memory.NewStore()
	runner := &flakyRunner{inner: s, failures: 10}
	uc := inventory.NewTransactionUseCase(runner, inventory.RetryPolicy{MaxRetries: 1}, nil)

	_, err := uc.ExecuteTransaction(context.Background(), restock(5, 3))
	require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, 2, runner.calls)
	assert.Equal(t, 0, logCount(t, s))
}

func TestExecuteTransaction_NoReintentaErroresDeNegocio(t *testing.T) {
	s := memory.NewStore()
	runner := &flakyRunner{inner: s}
	uc := inventory.NewTransactionUseCase(runner, inventory.RetryPolicy{MaxRetries: 3}, nil)

	_, err := uc.ExecuteTransaction(context.Background(), transfer(5, 1, 1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, runner.calls)
}

func TestExecuteFromRequest(t *testing.T) {
	s := memory.NewStore()
	uc := newProcessor(s)

	out, err := uc.ExecuteFromRequest(context.Background(), dto.ExecuteTransactionRequest{
		VariantID: 8, TransactionType: "RESTOCK", Quantity: 4, StaffID: 12, Notes: "lote 7",
	})
	require.NoError(t, err)
	assert.Equal(t, "RESTOCK", out.TransactionType)
	assert.Equal(t, int64(12), out.StaffID)
	assert.Equal(t, "lote 7", out.Notes)
	assert.Nil(t, out.ToDealerID)
}
