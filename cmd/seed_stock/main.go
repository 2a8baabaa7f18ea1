// seed_stock carga saldos iniciales de inventario desde un CSV exportado del sistema anterior.
// Cada fila se aplica como RESTOCK en la bodega central y, si trae concesionario, como
// TRANSFER_TO_DEALER, de modo que el ledger refleja el origen de todo el stock.
//
// Uso: go run ./cmd/seed_stock [ruta/stock_inicial.csv] [staff_id]
// Formato: variante;cantidad;concesionario;punto_reorden (UTF-8 o Windows-1252).
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-concesionarios/pkg/config"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

const seedNotes = "carga inicial"

func main() {
	csvPath := "stock_inicial.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	var staffID int64
	if len(os.Args) > 2 {
		n, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "staff_id inválido: %v\n", err)
			os.Exit(1)
		}
		staffID = n
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseOpening(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	txUC := inventory.NewTransactionUseCase(postgres.NewTxRunner(pool), inventory.RetryPolicy{
		MaxRetries: cfg.Ledger.MaxRetries,
		Backoff:    cfg.Ledger.RetryBackoff,
	}, log.Named("ledger"))
	reorderUC := inventory.NewReorderUseCase(
		postgres.NewCentralInventoryRepository(pool),
		postgres.NewDealerAllocationRepository(pool),
	)

	applied, failed := seed(ctx, rows, staffID, txUC, reorderUC, log)
	fmt.Printf("Cargadas %d filas de %s (%d con error)\n", applied, csvPath, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// seed aplica cada fila por separado; una fila con error no detiene las demás.
func seed(ctx context.Context, rows []openingRow, staffID int64, txUC *inventory.TransactionUseCase, reorderUC *inventory.ReorderUseCase, log *logger.Logger) (applied, failed int) {
	for _, row := range rows {
		if err := seedRow(ctx, row, staffID, txUC, reorderUC); err != nil {
			failed++
			log.Error().Err(err).Int("line", row.line).Int64("variant_id", row.variantID).Msg("fila no cargada")
			continue
		}
		applied++
	}
	return applied, failed
}

func seedRow(ctx context.Context, row openingRow, staffID int64, txUC *inventory.TransactionUseCase, reorderUC *inventory.ReorderUseCase) error {
	if row.quantity > 0 {
		if _, err := txUC.ExecuteTransaction(ctx, inventory.TransactionInput{
			VariantID: row.variantID,
			Type:      string(entity.TransactionTypeRestock),
			Quantity:  row.quantity,
			StaffID:   staffID,
			Notes:     seedNotes,
		}); err != nil {
			return fmt.Errorf("restock: %w", err)
		}
		if row.dealerID != nil {
			if _, err := txUC.ExecuteTransaction(ctx, inventory.TransactionInput{
				VariantID:  row.variantID,
				Type:       string(entity.TransactionTypeTransferToDealer),
				Quantity:   row.quantity,
				ToDealerID: row.dealerID,
				StaffID:    staffID,
				Notes:      seedNotes,
			}); err != nil {
				return fmt.Errorf("traslado: %w", err)
			}
		}
	}
	if row.reorderLevel != nil {
		if err := reorderUC.UpdateReorderLevel(ctx, row.variantID, row.dealerID, row.reorderLevel); err != nil {
			return fmt.Errorf("punto de reorden: %w", err)
		}
	}
	return nil
}
