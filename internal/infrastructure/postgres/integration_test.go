package postgres_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/postgres"
)

// openTestPool conecta a TEST_DATABASE_URL en un esquema propio que se elimina al terminar.
// Sin la variable el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	schema := "it_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close(context.Background())
	})

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func newAlert(variantID int64, dealerID *int64) *entity.StockAlert {
	alertType := entity.AlertTypeLowStockCentral
	if dealerID != nil {
		alertType = entity.AlertTypeLowStockDealer
	}
	return &entity.StockAlert{
		ID:           uuid.NewString(),
		VariantID:    variantID,
		DealerID:     dealerID,
		AlertType:    alertType,
		CurrentStock: 1,
		Threshold:    5,
		Status:       entity.AlertStatusNew,
		CreatedAt:    time.Now(),
	}
}

func TestStockAlertRepo_UnaNEWPorVarianteYConcesionario(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := postgres.NewStockAlertRepository(pool)
	dealer := int64(1)

	created, err := repo.CreateIfAbsent(ctx, newAlert(100, nil))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, newAlert(100, nil))
	require.NoError(t, err)
	assert.False(t, created, "segunda alerta central NEW para la misma variante")

	created, err = repo.CreateIfAbsent(ctx, newAlert(100, &dealer))
	require.NoError(t, err)
	assert.True(t, created, "central y concesionario son pares distintos")

	created, err = repo.CreateIfAbsent(ctx, newAlert(100, &dealer))
	require.NoError(t, err)
	assert.False(t, created)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// Una alerta resuelta libera el par para una nueva NEW.
	_, err = pool.Exec(ctx, `UPDATE stock_alerts SET status = 'RESOLVED' WHERE variant_id = 100 AND dealer_id IS NULL`)
	require.NoError(t, err)
	created, err = repo.CreateIfAbsent(ctx, newAlert(100, nil))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestInventoryQueryRepo_FiltrosEnSQL(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	uc := inventory.NewTransactionUseCase(postgres.NewTxRunner(pool), inventory.RetryPolicy{MaxRetries: 3}, nil)
	dealer := int64(7)

	run := func(in inventory.TransactionInput) {
		t.Helper()
		in.StaffID = 1
		_, err := uc.ExecuteTransaction(ctx, in)
		require.NoError(t, err)
	}
	run(inventory.TransactionInput{VariantID: 1, Type: string(entity.TransactionTypeRestock), Quantity: 10})
	run(inventory.TransactionInput{VariantID: 2, Type: string(entity.TransactionTypeRestock), Quantity: 2})
	run(inventory.TransactionInput{VariantID: 3, Type: string(entity.TransactionTypeRestock), Quantity: 5})
	run(inventory.TransactionInput{VariantID: 3, Type: string(entity.TransactionTypeTransferToDealer), Quantity: 5, ToDealerID: &dealer})

	level := 5
	require.NoError(t, postgres.NewCentralInventoryRepository(pool).UpdateReorderLevel(ctx, 2, &level))

	q := postgres.NewInventoryQueryRepository(pool)
	variants := func(rows []*entity.CentralInventory) []int64 {
		out := make([]int64, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.VariantID)
		}
		return out
	}

	cases := []struct {
		name   string
		filter repository.InventoryListFilter
		want   []int64
		total  int
	}{
		{"sin filtros", repository.InventoryListFilter{}, []int64{1, 2, 3}, 3},
		{"concesionario", repository.InventoryListFilter{DealerID: &dealer}, []int64{3}, 1},
		{"stock bajo", repository.InventoryListFilter{Status: entity.StockStatusLowStock}, []int64{2}, 1},
		{"agotado", repository.InventoryListFilter{Status: entity.StockStatusOutOfStock}, []int64{3}, 1},
		{"ids AND estado", repository.InventoryListFilter{VariantIDs: []int64{1, 2}, Status: entity.StockStatusInStock}, []int64{1}, 1},
		{"página", repository.InventoryListFilter{Limit: 1, Offset: 1}, []int64{2}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, total, err := q.ListCentral(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, variants(rows))
			assert.Equal(t, tc.total, total)
		})
	}

	history, total, err := postgres.NewInventoryTransactionRepository(pool).List(ctx, repository.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, history, 2)
	assert.Equal(t, entity.TransactionTypeTransferToDealer, history[0].Type, "más reciente primero")
}
