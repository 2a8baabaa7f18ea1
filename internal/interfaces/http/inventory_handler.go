package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
)

// InventoryHandler maneja transacciones, consultas, umbrales y alertas del inventario.
type InventoryHandler struct {
	transactions *inventory.TransactionUseCase
	query        *inventory.QueryUseCase
	reorder      *inventory.ReorderUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(transactions *inventory.TransactionUseCase, query *inventory.QueryUseCase, reorder *inventory.ReorderUseCase) *InventoryHandler {
	return &InventoryHandler{transactions: transactions, query: query, reorder: reorder}
}

// ExecuteTransaction godoc
// @Summary      Ejecutar transacción de inventario
// @Description  RESTOCK suma a la bodega central; TRANSFER_TO_DEALER asigna unidades a un
//
//	concesionario; SALE descuenta del concesionario y del total del sistema.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExecuteTransactionRequest  true  "variant_id, transaction_type, quantity, to_dealer_id (TRANSFER_TO_DEALER y SALE), staff_id"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) ExecuteTransaction(c *fiber.Ctx) error {
	var in dto.ExecuteTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.transactions.ExecuteFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetInventoryStatus godoc
// @Summary      Estado de inventario de una variante
// @Tags         inventory
// @Produce      json
// @Param        variantId  path  int  true  "ID de la variante"
// @Success      200  {object}  dto.InventoryStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{variantId}/status [get]
func (h *InventoryHandler) GetInventoryStatus(c *fiber.Ctx) error {
	variantID, err := strconv.ParseInt(c.Params("variantId"), 10, 64)
	if err != nil {
		return validation(c, "variantId inválido")
	}
	out, err := h.query.GetInventoryStatus(c.UserContext(), variantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListInventory godoc
// @Summary      Listar inventario
// @Description  Filtros combinados con AND. search se resuelve contra el catálogo de variantes.
// @Tags         inventory
// @Produce      json
// @Param        search     query  string  false  "Texto libre (modelo, color, versión)"
// @Param        dealer_id  query  int     false  "Solo variantes con asignación en este concesionario"
// @Param        status     query  string  false  "IN_STOCK, LOW_STOCK u OUT_OF_STOCK"
// @Param        page       query  int     false  "Página (desde 1)"
// @Param        page_size  query  int     false  "Tamaño de página (máx. 100)"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "paginación inválida")
	}
	dealerID, err := optionalInt64(c.Query("dealer_id"))
	if err != nil {
		return validation(c, "dealer_id inválido")
	}
	out, err := h.query.ListInventory(c.UserContext(), inventory.ListInventoryFilter{
		SearchText: c.Query("search"),
		DealerID:   dealerID,
		Status:     c.Query("status"),
		Page:       page,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateReorderLevel godoc
// @Summary      Actualizar punto de reorden
// @Description  Sin dealer_id aplica a la bodega central. reorder_level null elimina el umbral.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        variantId  path  int                            true  "ID de la variante"
// @Param        body       body  dto.UpdateReorderLevelRequest  true  "dealer_id opcional, reorder_level"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{variantId}/reorder-level [put]
func (h *InventoryHandler) UpdateReorderLevel(c *fiber.Ctx) error {
	variantID, err := strconv.ParseInt(c.Params("variantId"), 10, 64)
	if err != nil {
		return validation(c, "variantId inválido")
	}
	var in dto.UpdateReorderLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.reorder.UpdateReorderLevel(c.UserContext(), variantID, in.DealerID, in.ReorderLevel); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTransactionHistory godoc
// @Summary      Historial de transacciones
// @Description  Más reciente primero. end_date es inclusivo hasta el final del día.
// @Tags         inventory
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        page        query  int     false  "Página (desde 1)"
// @Param        page_size   query  int     false  "Tamaño de página (máx. 100)"
// @Success      200  {object}  dto.TransactionHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) GetTransactionHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "paginación inválida")
	}
	out, err := h.query.GetTransactionHistory(c.UserContext(), c.Query("start_date"), c.Query("end_date"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetActiveAlerts godoc
// @Summary      Alertas de stock bajo activas
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.StockAlertDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) GetActiveAlerts(c *fiber.Ctx) error {
	out, err := h.query.GetActiveAlerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
