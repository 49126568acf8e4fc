package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner simula una transacción: los appends quedan pendientes hasta que fn
// termina sin error; los productos leídos con GetForUpdate quedan bloqueados hasta el final.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn y confirma los movimientos pendientes; ante error los descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{s: r.s, held: make(map[int64]*sync.Mutex)}
	defer tx.release()

	if err := fn(&txProductRepo{ProductRepo: NewProductRepository(r.s), tx: tx}, &txMovementRepo{tx: tx}); err != nil {
		return err
	}
	return tx.commit()
}

type memTx struct {
	s       *Store
	held    map[int64]*sync.Mutex
	pending []*entity.StockMovement
}

func (t *memTx) lock(id int64) {
	if _, ok := t.held[id]; ok {
		return
	}
	l := t.s.productLock(id)
	l.Lock()
	t.held[id] = l
}

func (t *memTx) release() {
	for _, l := range t.held {
		l.Unlock()
	}
	t.held = nil
}

func (t *memTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, m := range t.pending {
		if _, ok := t.s.products[m.ProductID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, m := range t.pending {
		t.s.byProduct[m.ProductID] = append(t.s.byProduct[m.ProductID], m)
	}
	t.pending = nil
	return nil
}

func (t *memTx) pendingFor(productID int64) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range t.pending {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

type txProductRepo struct {
	*ProductRepo
	tx *memTx
}

// GetForUpdate bloquea el producto hasta el final de la transacción.
func (r *txProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	r.tx.lock(id)
	return r.ProductRepo.GetByID(ctx, id)
}

type txMovementRepo struct {
	tx *memTx
}

// Append bloquea el producto hasta el commit para que el orden de IDs coincida con el de confirmación.
func (r *txMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	r.tx.lock(m.ProductID)
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	if err := r.tx.s.prepareLocked(m); err != nil {
		return err
	}
	r.tx.pending = append(r.tx.pending, cloneMovement(m))
	return nil
}

func (r *txMovementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	r.tx.s.mu.RLock()
	defer r.tx.s.mu.RUnlock()
	return pageNewestFirst(r.tx.s.byProduct[productID], r.tx.pendingFor(productID), limit, offset), nil
}

func (r *txMovementRepo) Balance(_ context.Context, productID int64) (int64, error) {
	r.tx.s.mu.RLock()
	defer r.tx.s.mu.RUnlock()
	return ledger.SumBalance(r.tx.s.byProduct[productID]) + ledger.SumBalance(r.tx.pendingFor(productID)), nil
}
