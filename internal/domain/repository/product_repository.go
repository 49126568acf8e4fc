package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción
	// (SELECT FOR UPDATE). Serializa los movimientos de un mismo producto.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListActive lista los productos activos ordenados por ID.
	ListActive(ctx context.Context) ([]*entity.Product, error)
	// Delete devuelve domain.ErrProductInUse si existen movimientos que lo referencian.
	Delete(ctx context.Context, id int64) error
}
