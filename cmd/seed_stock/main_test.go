package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

func TestDecodeInput_Windows1252(t *testing.T) {
	// "versión" en Windows-1252: ó = 0xF3
	raw := []byte("variante;cantidad;concesionario;versi\xf3n\n100;5;;\n")
	rows, err := parseOpening(decodeInput(raw))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].variantID)
	assert.Nil(t, rows[0].dealerID)
	assert.Nil(t, rows[0].reorderLevel)
}

func TestParseOpening_Errores(t *testing.T) {
	cases := map[string]string{
		"sin datos":           "variante;cantidad\n",
		"variante inválida":   "variante;cantidad\nabc;5\n",
		"cantidad negativa":   "variante;cantidad\n100;-1\n",
		"concesionario cero":  "variante;cantidad;concesionario\n100;1;0\n",
		"reorden no numérico": "variante;cantidad;concesionario;punto_reorden\n100;1;;x\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseOpening(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestSeed_AplicaRestockTrasladoYReorden(t *testing.T) {
	s := memory.NewStore()
	txUC := inventory.NewTransactionUseCase(s, inventory.RetryPolicy{MaxRetries: 1}, nil)
	reorderUC := inventory.NewReorderUseCase(s.CentralRepository(), s.DealerRepository())
	query := inventory.NewQueryUseCase(s.CentralRepository(), s.DealerRepository(), s.QueryRepository(),
		s.TransactionRepository(), s.AlertRepository(), nil)

	rows, err := parseOpening(strings.NewReader(
		"variante;cantidad;concesionario;punto_reorden\n" +
			"100;20;;5\n" +
			"100;8;1;2\n" +
			"200;0;;3\n"))
	require.NoError(t, err)

	applied, failed := seed(context.Background(), rows, 99, txUC, reorderUC, logger.Nop())
	assert.Equal(t, 2, applied)
	assert.Equal(t, 1, failed, "variante sin stock no tiene fila central para el punto de reorden")

	status, err := query.GetInventoryStatus(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 28, status.TotalInSystem)
	assert.Equal(t, 20, status.CentralAvailable)
	assert.Equal(t, 8, status.CentralAllocated)
	require.NotNil(t, status.ReorderLevel)
	assert.Equal(t, 5, *status.ReorderLevel)
	require.Len(t, status.DealerStock, 1)
	require.NotNil(t, status.DealerStock[0].ReorderLevel)
	assert.Equal(t, 2, *status.DealerStock[0].ReorderLevel)
}
