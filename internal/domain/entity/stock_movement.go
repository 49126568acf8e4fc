package entity

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeInbound  MovementType = "INBOUND"  // entrada, suma al saldo
	MovementTypeOutbound MovementType = "OUTBOUND" // salida, resta del saldo
)

// ParseMovementType valida el tipo recibido desde el exterior.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementTypeInbound, MovementTypeOutbound:
		return MovementType(s), nil
	}
	return "", domain.ErrInvalidMovementType
}

// Sign devuelve +1 para entradas y -1 para salidas.
func (t MovementType) Sign() int64 {
	if t == MovementTypeOutbound {
		return -1
	}
	return 1
}

// StockMovement es una línea inmutable del libro. Las correcciones se registran
// como nuevos movimientos compensatorios, nunca editando ni borrando.
type StockMovement struct {
	ID        int64 // asignado por el store, creciente
	ProductID int64
	Type      MovementType
	Quantity  int64 // siempre > 0
	Reason    string
	CreatedAt time.Time // asignado por el store al insertar
}

// NewStockMovement construye un movimiento validado (aún sin ID ni fecha).
func NewStockMovement(productID int64, typ MovementType, quantity int64, reason string) (*StockMovement, error) {
	if _, err := ParseMovementType(string(typ)); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return &StockMovement{
		ProductID: productID,
		Type:      typ,
		Quantity:  quantity,
		Reason:    reason,
	}, nil
}

// SignedQuantity cantidad con signo según el tipo.
func (m *StockMovement) SignedQuantity() int64 {
	return m.Type.Sign() * m.Quantity
}
