package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El saldo no se edita aquí: se deriva de los movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. MinimumStock por defecto 0 y Active por defecto true.
// ErrDuplicate si ya existe un producto con el mismo nombre (NFC, sin mayúsculas).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		PriceMinorUnits: in.PriceMinorUnits,
		Active:          true,
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos paginados por ID.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	limit, offset, err := inventory.ClampPage(limit, offset)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica los campos presentes en la petición.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.PriceMinorUnits != nil {
		product.PriceMinorUnits = *in.PriceMinorUnits
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete elimina un producto sin movimientos. ErrProductInUse si el libro lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
