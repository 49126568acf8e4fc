package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (autocommit).
type StockMovementRepo struct {
	s *Store
}

// NewStockMovementRepository construye el repositorio sobre el store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

// Append inserta y confirma de inmediato. Espera a las transacciones que tengan el
// producto bloqueado, igual que el INSERT en PostgreSQL.
func (r *StockMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	l := r.s.productLock(m.ProductID)
	l.Lock()
	defer l.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.prepareLocked(m); err != nil {
		return err
	}
	r.s.byProduct[m.ProductID] = append(r.s.byProduct[m.ProductID], cloneMovement(m))
	return nil
}

// ListByProduct del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pageNewestFirst(r.s.byProduct[productID], nil, limit, offset), nil
}

// Balance recalcula el saldo sumando el libro del producto.
func (r *StockMovementRepo) Balance(_ context.Context, productID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return ledger.SumBalance(r.s.byProduct[productID]), nil
}

// prepareLocked valida la FK y la cantidad, y asigna ID y fecha. Requiere s.mu tomado.
func (s *Store) prepareLocked(m *entity.StockMovement) error {
	if m.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if _, ok := s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	s.nextMovementID++
	m.ID = s.nextMovementID
	m.CreatedAt = s.now()
	return nil
}

// pageNewestFirst concatena committed + pending (ambos en orden de inserción),
// invierte el orden y aplica limit/offset.
func pageNewestFirst(committed, pending []*entity.StockMovement, limit, offset int) []*entity.StockMovement {
	all := make([]*entity.StockMovement, 0, len(committed)+len(pending))
	all = append(all, committed...)
	all = append(all, pending...)
	out := make([]*entity.StockMovement, 0, limit)
	for i := len(all) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneMovement(all[i]))
	}
	return out
}
