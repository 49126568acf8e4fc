package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// requestError error de forma del request (cuerpo ilegible o validación de tags).
type requestError struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *requestError) Error() string { return e.Message }

var statusByCode = map[string]int{
	"NOT_FOUND":            fiber.StatusNotFound,
	"INVALID_QUANTITY":     fiber.StatusUnprocessableEntity,
	"INVALID_REASON":       fiber.StatusUnprocessableEntity,
	"VALIDATION":           fiber.StatusBadRequest,
	"INSUFFICIENT_BALANCE": fiber.StatusConflict,
	"DUPLICATE":            fiber.StatusConflict,
	"PRODUCT_IN_USE":       fiber.StatusConflict,
	"UNAUTHORIZED":         fiber.StatusUnauthorized,
	"FORBIDDEN":            fiber.StatusForbidden,
}

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
// Los 5xx se registran en el log; su mensaje no se expone al cliente.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := errorResponse(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("request_id", c.Locals("requestid")).
				Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: reqErr.Code, Message: reqErr.Message, Details: reqErr.Details}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusUnprocessableEntity, fiber.StatusBadRequest:
			code = "INVALID_BODY"
		}
		return fe.Code, dto.ErrorResponse{Code: code, Message: fe.Message}
	}

	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
	body := dto.ErrorResponse{Code: code, Message: err.Error()}
	var ibe *domain.InsufficientBalanceError
	if errors.As(err, &ibe) {
		body.Details = map[string]any{
			"product_id": ibe.ProductID,
			"balance":    ibe.Balance,
			"requested":  ibe.Requested,
		}
	}
	return status, body
}
