package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// StockHandler movimientos, saldo y extracto del libro de stock (protegido).
type StockHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.RegisterMovementUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  INBOUND suma y OUTBOUND resta. Una salida mayor al saldo responde 409 INSUFFICIENT_BALANCE.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, type, quantity, reason (opcional)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	mov, err := h.uc.CreateMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// Sell godoc
// @Summary      Registrar venta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/sale [post]
func (h *StockHandler) Sell(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	qty, err := dto.ParseQuantity(in.Quantity)
	if err != nil {
		return err
	}
	mov, err := h.uc.Sell(c.UserContext(), in.ProductID, qty)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// Return godoc
// @Summary      Registrar devolución
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/return [post]
func (h *StockHandler) Return(c *fiber.Ctx) error {
	var in dto.StockOperationRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	qty, err := dto.ParseQuantity(in.Quantity)
	if err != nil {
		return err
	}
	mov, err := h.uc.ReturnStock(c.UserContext(), in.ProductID, qty)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// Adjust godoc
// @Summary      Registrar ajuste
// @Description  Igual que un movimiento directo pero con motivo obligatorio (mínimo 2 caracteres).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, type, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/adjustment [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	mov, err := h.uc.AdjustFromRequest(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// Balance godoc
// @Summary      Saldo de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/balance/{product_id} [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	id, err := idParam(c, "product_id")
	if err != nil {
		return err
	}
	out, err := h.uc.BalanceOf(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Extracto de movimientos
// @Description  Más reciente primero. limit por defecto 20, máximo 200.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   int  true   "ID del producto"
// @Param        limit       query  int  false  "Límite"  default(20)
// @Param        offset      query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.StatementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stock/statement/{product_id} [get]
func (h *StockHandler) Statement(c *fiber.Ctx) error {
	id, err := idParam(c, "product_id")
	if err != nil {
		return err
	}
	limit, offset, err := pageQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListByProduct(c.UserContext(), id, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
