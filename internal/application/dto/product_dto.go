package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Description     string `json:"description" validate:"max=1000"`
	PriceMinorUnits int64  `json:"price_minor_units" validate:"gt=0"`
	MinimumStock    *int64 `json:"minimum_stock" validate:"omitempty,gte=0"`
	Active          *bool  `json:"active"`
}

// UpdateProductRequest entrada para actualizar un producto (el saldo no es editable).
type UpdateProductRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
	PriceMinorUnits *int64  `json:"price_minor_units" validate:"omitempty,gt=0"`
	MinimumStock    *int64  `json:"minimum_stock" validate:"omitempty,gte=0"`
	Active          *bool   `json:"active"`
}

// ProductResponse salida de un producto. Price es el precio en unidades mayores (centavos / 100).
type ProductResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PriceMinorUnits int64           `json:"price_minor_units"`
	Price           decimal.Decimal `json:"price"`
	MinimumStock    int64           `json:"minimum_stock"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse mapea la entidad a la respuesta.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		PriceMinorUnits: p.PriceMinorUnits,
		Price:           decimal.New(p.PriceMinorUnits, -2),
		MinimumStock:    p.MinimumStock,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
