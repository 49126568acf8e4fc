package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser un entero mayor que cero")
	ErrInvalidReason       = errors.New("el motivo del ajuste es obligatorio (mínimo 2 caracteres)")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido (INBOUND u OUTBOUND)")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrProductInUse        = errors.New("el producto tiene movimientos y no puede eliminarse")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)

// InsufficientBalanceError rechazo de una salida que dejaría el saldo negativo.
// Lleva el saldo actual y la cantidad intentada para diagnóstico.
// errors.Is(err, ErrInsufficientBalance) es verdadero.
type InsufficientBalanceError struct {
	ProductID int64
	Balance   int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente para el producto %d: saldo actual %d, salida solicitada %d",
		e.ProductID, e.Balance, e.Requested)
}

// Is permite comparar contra el sentinel ErrInsufficientBalance.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Code devuelve el código estable del error de dominio (usado en respuestas HTTP y métricas).
// "INTERNAL" para errores no clasificados.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, ErrInvalidReason):
		return "INVALID_REASON"
	case errors.Is(err, ErrInvalidMovementType), errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrProductInUse):
		return "PRODUCT_IN_USE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	}
	return "INTERNAL"
}
