package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
)

// ReportHandler exporta el ledger como archivo descargable.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GenerateReport godoc
// @Summary      Exportar transacciones
// @Description  Sin fechas se toma desde el primer día del mes actual hasta ahora.
// @Tags         reports
// @Produce      application/vnd.ms-excel
// @Produce      text/csv
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        format      query  string  false  "tabular|xls|excel, csv, document|pdf (por defecto xls)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/reports [get]
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	doc, err := h.uc.GenerateReport(c.UserContext(), c.Query("start_date"), c.Query("end_date"), c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Status(fiber.StatusOK).Send(doc.Content)
}
