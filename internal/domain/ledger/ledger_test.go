package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/ledger"
)

func dealerPtr(id int64) *int64 { return &id }

func TestApply_RestockSumaTotalYDisponible(t *testing.T) {
	c := entity.NewCentralInventory(100)
	for _, q := range []int{10, 25, 15} {
		var err error
		c, _, err = ledger.Apply(c, nil, ledger.Movement{VariantID: 100, Type: entity.TransactionTypeRestock, Quantity: q})
		require.NoError(t, err)
	}
	assert.Equal(t, 50, c.TotalQuantity)
	assert.Equal(t, 50, c.AvailableQuantity)
	assert.Equal(t, 0, c.AllocatedQuantity, "restock no debe tocar lo asignado")
}

func TestApply_TransferConservaCantidad(t *testing.T) {
	c := entity.CentralInventory{VariantID: 100, TotalQuantity: 50, AvailableQuantity: 50}
	d := entity.NewDealerAllocation(100, 1)

	c2, d2, err := ledger.Apply(c, &d, ledger.Movement{
		VariantID: 100, Type: entity.TransactionTypeTransferToDealer, Quantity: 20, ToDealerID: dealerPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, c2.AvailableQuantity)
	assert.Equal(t, 20, c2.AllocatedQuantity)
	assert.Equal(t, 50, c2.TotalQuantity)
	assert.Equal(t, 20, d2.AllocatedQuantity)
	assert.Equal(t, 20, d2.AvailableQuantity)
	assert.Equal(t, c2.TotalQuantity, c2.AvailableQuantity+c2.AllocatedQuantity)
	assert.Equal(t, 0, d.AllocatedQuantity, "el original no debe mutar")
}

func TestApply_SaleDescuentaConcesionarioYTotal(t *testing.T) {
	c := entity.CentralInventory{VariantID: 100, TotalQuantity: 50, AvailableQuantity: 30, AllocatedQuantity: 20}
	d := entity.DealerAllocation{VariantID: 100, DealerID: 1, AllocatedQuantity: 20, AvailableQuantity: 20}

	c2, d2, err := ledger.Apply(c, &d, ledger.Movement{
		VariantID: 100, Type: entity.TransactionTypeSale, Quantity: 5, ToDealerID: dealerPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, d2.AvailableQuantity)
	assert.Equal(t, 15, d2.AllocatedQuantity)
	assert.Equal(t, 45, c2.TotalQuantity)
	assert.Equal(t, 15, c2.AllocatedQuantity)
	assert.Equal(t, 30, c2.AvailableQuantity)
}

func TestApply_StockInsuficienteNoModifica(t *testing.T) {
	c := entity.CentralInventory{VariantID: 100, TotalQuantity: 10, AvailableQuantity: 10}
	d := entity.NewDealerAllocation(100, 1)

	c2, d2, err := ledger.Apply(c, &d, ledger.Movement{
		VariantID: 100, Type: entity.TransactionTypeTransferToDealer, Quantity: 11, ToDealerID: dealerPtr(1),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, c, c2)
	assert.Equal(t, &d, d2)

	_, _, err = ledger.Apply(c, &d, ledger.Movement{
		VariantID: 100, Type: entity.TransactionTypeSale, Quantity: 1, ToDealerID: dealerPtr(1),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		m    ledger.Movement
		want error
	}{
		{"cantidad cero", ledger.Movement{VariantID: 1, Type: entity.TransactionTypeRestock, Quantity: 0}, domain.ErrInvalidQuantity},
		{"cantidad negativa", ledger.Movement{VariantID: 1, Type: entity.TransactionTypeRestock, Quantity: -3}, domain.ErrInvalidQuantity},
		{"tipo desconocido", ledger.Movement{VariantID: 1, Type: "RETURN", Quantity: 1}, domain.ErrUnsupportedType},
		{"venta sin concesionario", ledger.Movement{VariantID: 1, Type: entity.TransactionTypeSale, Quantity: 1}, domain.ErrDealerRequired},
		{"traslado sin concesionario", ledger.Movement{VariantID: 1, Type: entity.TransactionTypeTransferToDealer, Quantity: 1}, domain.ErrDealerRequired},
		{"variante inválida", ledger.Movement{VariantID: 0, Type: entity.TransactionTypeRestock, Quantity: 1}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.Validate(tc.m)
			require.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "toda validación envuelve ErrInvalidInput")
		})
	}

	require.NoError(t, ledger.Validate(ledger.Movement{VariantID: 1, Type: entity.TransactionTypeRestock, Quantity: 1}))
}

func TestSupportedYRequiresDealer(t *testing.T) {
	assert.True(t, ledger.Supported(entity.TransactionTypeSale))
	assert.False(t, ledger.Supported("ADJUSTMENT"))
	assert.True(t, ledger.RequiresDealer(entity.TransactionTypeTransferToDealer))
	assert.False(t, ledger.RequiresDealer(entity.TransactionTypeRestock))
}
