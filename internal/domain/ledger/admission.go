// Package ledger contiene los servicios de dominio puros del libro de stock:
// derivación del saldo, política de admisión y reglas de motivo.
package ledger

import (
	"fmt"
	"math"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// AdmissionPolicy decide si un movimiento propuesto puede registrarse.
// AllowNegativeStock=false (por defecto) rechaza salidas que dejarían el saldo bajo cero.
type AdmissionPolicy struct {
	AllowNegativeStock bool
}

// NewAdmissionPolicy construye la política con la opción de la configuración.
func NewAdmissionPolicy(allowNegativeStock bool) AdmissionPolicy {
	return AdmissionPolicy{AllowNegativeStock: allowNegativeStock}
}

// Admit aplica la regla con el saldo actual del producto (leído con el producto bloqueado).
// Devuelve *domain.InsufficientBalanceError cuando balance < quantity en una salida, y
// ErrInvalidQuantity si el saldo resultante no cabe en int64 (el libro es append-only:
// un saldo desbordado no se puede corregir después).
func (p AdmissionPolicy) Admit(productID int64, typ entity.MovementType, quantity, balance int64) error {
	switch typ {
	case entity.MovementTypeInbound:
		if balance > math.MaxInt64-quantity {
			return fmt.Errorf("%w: el saldo resultante excede el máximo representable", domain.ErrInvalidQuantity)
		}
	case entity.MovementTypeOutbound:
		if !p.AllowNegativeStock && balance < quantity {
			return &domain.InsufficientBalanceError{
				ProductID: productID,
				Balance:   balance,
				Requested: quantity,
			}
		}
		if balance < math.MinInt64+quantity {
			return fmt.Errorf("%w: el saldo resultante excede el mínimo representable", domain.ErrInvalidQuantity)
		}
	}
	return nil
}
