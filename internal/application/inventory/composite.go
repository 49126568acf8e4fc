package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
)

// Sell registra una salida con motivo fijo "sale".
func (uc *RegisterMovementUseCase) Sell(ctx context.Context, productID, quantity int64) (*entity.StockMovement, error) {
	mov, err := entity.NewStockMovement(productID, entity.MovementTypeOutbound, quantity, ledger.ReasonSale)
	if err != nil {
		return nil, err
	}
	return uc.register(ctx, mov)
}

// ReturnStock registra una entrada con motivo fijo "return".
func (uc *RegisterMovementUseCase) ReturnStock(ctx context.Context, productID, quantity int64) (*entity.StockMovement, error) {
	mov, err := entity.NewStockMovement(productID, entity.MovementTypeInbound, quantity, ledger.ReasonReturn)
	if err != nil {
		return nil, err
	}
	return uc.register(ctx, mov)
}

// Adjust registra un ajuste con el tipo indicado. A diferencia del movimiento
// directo, el motivo es obligatorio (ErrInvalidReason si tiene menos de 2 caracteres).
func (uc *RegisterMovementUseCase) Adjust(ctx context.Context, productID int64, typ string, quantity int64, reason string) (*entity.StockMovement, error) {
	mt, err := entity.ParseMovementType(typ)
	if err != nil {
		return nil, err
	}
	mov, err := entity.NewStockMovement(productID, mt, quantity, "")
	if err != nil {
		return nil, err
	}
	if mov.Reason, err = ledger.AdjustmentReason(reason); err != nil {
		return nil, err
	}
	return uc.register(ctx, mov)
}
