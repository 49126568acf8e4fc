package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUseCase() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewProductUseCase(memory.NewProductRepository(store)), store
}

func ptr[T any](v T) *T { return &v }

func TestProductUseCase_CreateDefaults(t *testing.T) {
	uc, _ := newProductUseCase()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  Café molido ", PriceMinorUnits: 1250})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Café molido", out.Name)
	assert.Equal(t, int64(0), out.MinimumStock)
	assert.True(t, out.Active)
	assert.Equal(t, "12.5", out.Price.String())
}

func TestProductUseCase_CreateDuplicateName(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Café Molido", PriceMinorUnits: 100})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "café  molido", PriceMinorUnits: 100})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_CreateInvalid(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"nombre vacío", dto.CreateProductRequest{Name: "  ", PriceMinorUnits: 100}},
		{"precio cero", dto.CreateProductRequest{Name: "A", PriceMinorUnits: 0}},
		{"mínimo negativo", dto.CreateProductRequest{Name: "A", PriceMinorUnits: 1, MinimumStock: ptr(int64(-1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUseCase_UpdatePartial(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Azúcar", Description: "1kg", PriceMinorUnits: 300})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{MinimumStock: ptr(int64(5)), Active: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Azúcar", out.Name)
	assert.Equal(t, "1kg", out.Description)
	assert.Equal(t, int64(5), out.MinimumStock)
	assert.False(t, out.Active)

	_, err = uc.Update(ctx, 999, dto.UpdateProductRequest{Active: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_UpdateRenameCollision(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Arroz", PriceMinorUnits: 100})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Frijol", PriceMinorUnits: 100})
	require.NoError(t, err)

	_, err = uc.Update(ctx, b.ID, dto.UpdateProductRequest{Name: ptr("ARROZ")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// renombrar a sí mismo con otra capitalización es válido
	out, err := uc.Update(ctx, b.ID, dto.UpdateProductRequest{Name: ptr("FRIJOL")})
	require.NoError(t, err)
	assert.Equal(t, "FRIJOL", out.Name)
}

func TestProductUseCase_DeleteRules(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()

	free, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Libre", PriceMinorUnits: 100})
	require.NoError(t, err)
	used, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Usado", PriceMinorUnits: 100})
	require.NoError(t, err)

	movRepo := memory.NewStockMovementRepository(store)
	mov, err := entity.NewStockMovement(used.ID, entity.MovementTypeInbound, 1, "")
	require.NoError(t, err)
	require.NoError(t, movRepo.Append(ctx, mov))

	require.NoError(t, uc.Delete(ctx, free.ID))
	_, err = uc.GetByID(ctx, free.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, used.ID), domain.ErrProductInUse)
	assert.ErrorIs(t, uc.Delete(ctx, 12345), domain.ErrNotFound)
}

func TestProductUseCase_ListPaging(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: n, PriceMinorUnits: 1})
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "B", page.Items[0].Name)
	assert.Equal(t, "C", page.Items[1].Name)

	_, err = uc.List(ctx, -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
