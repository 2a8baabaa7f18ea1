package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/catalog"
	infrakafka "github.com/jhoicas/inventario-concesionarios/internal/infrastructure/kafka"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-concesionarios/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/tabular"
	httpRouter "github.com/jhoicas/inventario-concesionarios/internal/interfaces/http"
	"github.com/jhoicas/inventario-concesionarios/pkg/config"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

// storage repositorios del ledger según el driver configurado.
type storage struct {
	txRunner    inventory.TxRunner
	centralRepo repository.CentralInventoryRepository
	dealerRepo  repository.DealerAllocationRepository
	txRepo      repository.InventoryTransactionRepository
	alertRepo   repository.StockAlertRepository
	queryRepo   repository.InventoryQueryRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Catálogo de variantes: HTTP, con caché en redis si hay dirección configurada.
	var resolver inventory.CatalogResolver = catalog.NewHTTPResolver(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		resolver = catalog.NewCachedResolver(resolver, rdb, cfg.Catalog.CacheTTL, log.Named("catalog"))
	}

	transactionUC := inventory.NewTransactionUseCase(store.txRunner, inventory.RetryPolicy{
		MaxRetries: cfg.Ledger.MaxRetries,
		Backoff:    cfg.Ledger.RetryBackoff,
	}, log.Named("ledger"))
	queryUC := inventory.NewQueryUseCase(store.centralRepo, store.dealerRepo, store.queryRepo, store.txRepo, store.alertRepo, resolver)
	reorderUC := inventory.NewReorderUseCase(store.centralRepo, store.dealerRepo)
	reportUC := report.NewReportUseCase(store.txRepo, map[string]report.Generator{
		report.FormatXLS: tabular.NewSpreadsheetGenerator(),
		report.FormatCSV: tabular.NewCSVGenerator(),
		report.FormatPDF: infrapdf.NewMarotoReportGenerator(),
	})

	var wg sync.WaitGroup

	// Kafka: solicitudes de fulfillment (entrada) y alertas (salida).
	var publisher inventory.AlertPublisher
	if cfg.Kafka.Enabled() {
		reader := infrakafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.FulfillmentTopic, cfg.Kafka.GroupID)
		defer reader.Close()
		writer := infrakafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.AlertTopic)
		defer writer.Close()
		publisher = infrakafka.NewAlertPublisher(writer)

		listener := infrakafka.NewFulfillmentListener(reader, transactionUC, log.Named("fulfillment-listener"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			listener.Start(ctx)
		}()
	}

	if cfg.Ledger.AlertScanEnabled {
		monitor := inventory.NewStockAlertMonitor(store.centralRepo, store.dealerRepo, store.alertRepo, publisher, log.Named("stock-alert-monitor"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			monitor.Run(ctx, cfg.Ledger.AlertScanInterval)
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "Inventario Concesionarios API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Transactions: transactionUC,
		Query:        queryUC,
		Reorder:      reorderUC,
		Reports:      reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Detener workers antes de cerrar el pool.
	stop()
	wg.Wait()

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			txRunner:    s,
			centralRepo: s.CentralRepository(),
			dealerRepo:  s.DealerRepository(),
			txRepo:      s.TransactionRepository(),
			alertRepo:   s.AlertRepository(),
			queryRepo:   s.QueryRepository(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		txRunner:    postgres.NewTxRunner(pool),
		centralRepo: postgres.NewCentralInventoryRepository(pool),
		dealerRepo:  postgres.NewDealerAllocationRepository(pool),
		txRepo:      postgres.NewInventoryTransactionRepository(pool),
		alertRepo:   postgres.NewStockAlertRepository(pool),
		queryRepo:   postgres.NewInventoryQueryRepository(pool),
		close:       pool.Close,
	}, nil
}
