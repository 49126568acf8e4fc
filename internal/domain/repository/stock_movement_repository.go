package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos (solo inserción y lectura).
type StockMovementRepository interface {
	// Append inserta el movimiento y completa ID y CreatedAt.
	// domain.ErrNotFound si el producto no existe; domain.ErrInvalidQuantity si quantity <= 0.
	Append(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve movimientos del más reciente al más antiguo (created_at DESC, id DESC).
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error)
	// Balance suma entradas menos salidas del producto; 0 si no tiene movimientos.
	Balance(ctx context.Context, productID int64) (int64, error)
}
