package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// CreateMovementFromRequest adapta el request HTTP al caso de uso CreateMovement.
func (uc *RegisterMovementUseCase) CreateMovementFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	qty, err := dto.ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	input := MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  qty,
	}
	if in.Reason != nil {
		input.Reason = *in.Reason
	}
	return uc.CreateMovement(ctx, input)
}

// AdjustFromRequest adapta el request HTTP al caso de uso Adjust.
func (uc *RegisterMovementUseCase) AdjustFromRequest(ctx context.Context, in dto.AdjustmentRequest) (*entity.StockMovement, error) {
	qty, err := dto.ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	return uc.Adjust(ctx, in.ProductID, in.Type, qty, in.Reason)
}

// BalanceOf devuelve el saldo derivado del producto. ErrNotFound si no existe.
// Sin movimientos el saldo es 0.
func (uc *RegisterMovementUseCase) BalanceOf(ctx context.Context, productID int64) (*dto.BalanceResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	balance, err := uc.balances.Balance(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Balance:     balance,
	}, nil
}

// ClampPage normaliza limit/offset del extracto: negativos => ErrInvalidInput,
// limit 0 => DefaultPageLimit, limit > MaxPageLimit => MaxPageLimit.
func ClampPage(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, domain.ErrInvalidInput
	}
	if limit == 0 {
		limit = dto.DefaultPageLimit
	}
	if limit > dto.MaxPageLimit {
		limit = dto.MaxPageLimit
	}
	return limit, offset, nil
}

// ListByProduct devuelve una página del extracto (más reciente primero).
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID int64, limit, offset int) (*dto.StatementResponse, error) {
	limit, offset, err := ClampPage(limit, offset)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return &dto.StatementResponse{
		ProductID: productID,
		Items:     items,
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
