package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reportes de stock: resumen, bajo mínimo y exportaciones.
type ReportHandler struct {
	uc *inventory.StockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.StockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de stock
// @Description  Una fila por producto activo con saldo, mínimo y marca de bajo mínimo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockSummaryRow
// @Router       /api/v1/stock/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	rows, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// BelowMinimum godoc
// @Summary      Productos bajo el stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockSummaryRow
// @Router       /api/v1/products/below-minimum [get]
func (h *ReportHandler) BelowMinimum(c *fiber.Ctx) error {
	rows, err := h.uc.BelowMinimum(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// SummaryPDF godoc
// @Summary      Resumen de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/v1/stock/summary/pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	doc, name, err := h.uc.SummaryPDF(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(doc)
}

// StatementXLSX godoc
// @Summary      Extracto completo en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/statement/{product_id}/xlsx [get]
func (h *ReportHandler) StatementXLSX(c *fiber.Ctx) error {
	id, err := idParam(c, "product_id")
	if err != nil {
		return err
	}
	doc, name, err := h.uc.StatementXLSX(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(doc)
}
