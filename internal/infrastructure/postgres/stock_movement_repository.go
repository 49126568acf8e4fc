package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// No expone UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta el movimiento; la BD asigna id y created_at.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	if m.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		INSERT INTO stock_movements (product_id, type, quantity, reason, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), clock_timestamp())
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, m.ProductID, string(m.Type), m.Quantity, m.Reason).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("append stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve el extracto del producto, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, COALESCE(reason, ''), created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0, limit)
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Balance suma entradas menos salidas. SUM(bigint) es NUMERIC y se lee como decimal.
func (r *StockMovementRepo) Balance(ctx context.Context, productID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'INBOUND' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements
		WHERE product_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("stock balance: %w", err)
	}
	if !total.IsInteger() {
		return 0, fmt.Errorf("stock balance: resultado no entero %s", total)
	}
	if total.GreaterThan(maxBalance) || total.LessThan(minBalance) {
		return 0, fmt.Errorf("stock balance: %s fuera de rango int64", total)
	}
	return total.IntPart(), nil
}

var (
	maxBalance = decimal.NewFromInt(math.MaxInt64)
	minBalance = decimal.NewFromInt(math.MinInt64)
)
