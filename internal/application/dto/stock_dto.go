package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/v1/stock/movements.
// quantity se recibe como Quantity: solo acepta un número JSON literal.
type CreateMovementRequest struct {
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	Type      string   `json:"type" validate:"required"`
	Quantity  Quantity `json:"quantity" validate:"required"`
	Reason    *string  `json:"reason,omitempty"`
}

// StockOperationRequest body para venta y devolución.
type StockOperationRequest struct {
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	Quantity  Quantity `json:"quantity" validate:"required"`
}

// AdjustmentRequest body para POST /api/v1/stock/adjustment (motivo obligatorio).
type AdjustmentRequest struct {
	ProductID int64    `json:"product_id" validate:"required,gt=0"`
	Type      string   `json:"type" validate:"required"`
	Quantity  Quantity `json:"quantity" validate:"required"`
	Reason    string   `json:"reason"`
}

// Quantity cantidad tal como llega en el cuerpo. Un string ("5") no se convierte:
// se rechaza con ErrInvalidQuantity al decodificar.
type Quantity string

// UnmarshalJSON exige un número sin comillas; null deja el valor vacío (lo rechaza `required`).
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return domain.ErrInvalidQuantity
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return domain.ErrInvalidQuantity
	}
	*q = Quantity(n)
	return nil
}

// ParseQuantity convierte la cantidad recibida a entero; decimales => ErrInvalidQuantity.
// El signo se valida en el dominio.
func ParseQuantity(q Quantity) (int64, error) {
	n, err := json.Number(q).Int64()
	if err != nil {
		return 0, domain.ErrInvalidQuantity
	}
	return n, nil
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMovementResponse mapea la entidad; motivo vacío => null.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	out := MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
	if m.Reason != "" {
		r := m.Reason
		out.Reason = &r
	}
	return out
}

// StatementResponse página del extracto de un producto (más reciente primero).
type StatementResponse struct {
	ProductID int64              `json:"product_id"`
	Items     []MovementResponse `json:"items"`
	Page      PageResponse       `json:"page"`
}

// BalanceResponse saldo derivado de un producto.
type BalanceResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Balance     int64  `json:"balance"`
}

// StockSummaryRow fila del resumen de stock y del listado bajo mínimo.
type StockSummaryRow struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Balance      int64  `json:"balance"`
	MinimumStock int64  `json:"minimum_stock"`
	BelowMinimum bool   `json:"below_minimum"`
}
