package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Transactions *inventory.TransactionUseCase
	Query        *inventory.QueryUseCase
	Reorder      *inventory.ReorderUseCase
	Reports      *report.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Transactions, deps.Query, deps.Reorder)
	reportHandler := NewReportHandler(deps.Reports)

	// Rutas fijas antes de /:variantId
	invGroup.Post("/transactions", inventoryHandler.ExecuteTransaction)
	invGroup.Get("/transactions", inventoryHandler.GetTransactionHistory)
	invGroup.Get("/alerts", inventoryHandler.GetActiveAlerts)
	invGroup.Get("/reports", reportHandler.GenerateReport)
	invGroup.Get("/", inventoryHandler.ListInventory)

	invGroup.Get("/:variantId/status", inventoryHandler.GetInventoryStatus)
	invGroup.Put("/:variantId/reorder-level", inventoryHandler.UpdateReorderLevel)
}
