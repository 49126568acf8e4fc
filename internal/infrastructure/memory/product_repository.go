package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo registro de productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create asigna ID y fechas. ErrDuplicate si el nombre ya existe.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := entity.NameKey(product.Name)
	if _, ok := r.s.nameKeys[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.nextProductID++
	now := r.s.now()
	product.ID = r.s.nextProductID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.s.products[product.ID] = cloneProduct(product)
	r.s.nameKeys[key] = product.ID
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate fuera de una transacción no retiene el bloqueo (como autocommit).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los campos editables. ErrNotFound / ErrDuplicate.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	oldKey, newKey := entity.NameKey(cur.Name), entity.NameKey(product.Name)
	if oldKey != newKey {
		if _, taken := r.s.nameKeys[newKey]; taken {
			return domain.ErrDuplicate
		}
		delete(r.s.nameKeys, oldKey)
		r.s.nameKeys[newKey] = product.ID
	}
	product.CreatedAt = cur.CreatedAt
	product.UpdatedAt = r.s.now()
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

// List pagina por ID ascendente.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all := r.sorted(false)
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ListActive productos activos por ID ascendente.
func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	return r.sorted(true), nil
}

// Delete bloquea la fila del producto y rechaza si tiene movimientos.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	l := r.s.productLock(id)
	l.Lock()
	defer l.Unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if len(r.s.byProduct[id]) > 0 {
		return domain.ErrProductInUse
	}
	delete(r.s.nameKeys, entity.NameKey(p.Name))
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) sorted(onlyActive bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if onlyActive && !p.Active {
			continue
		}
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
