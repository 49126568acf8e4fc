package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

func TestAppend_WaitsForOpenTransactionOnProduct(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	prods := memory.NewProductRepository(store)
	movs := memory.NewStockMovementRepository(store)
	runner := memory.NewTxRunner(store)

	p := &entity.Product{Name: "Bloqueado", PriceMinorUnits: 100, Active: true}
	require.NoError(t, prods.Create(ctx, p))

	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- runner.Run(ctx, func(_ repository.ProductRepository, mr repository.StockMovementRepository) error {
			m, err := entity.NewStockMovement(p.ID, entity.MovementTypeInbound, 5, "")
			if err != nil {
				return err
			}
			if err := mr.Append(ctx, m); err != nil {
				return err
			}
			close(inTx)
			<-release
			return nil
		})
	}()
	<-inTx

	outside, err := entity.NewStockMovement(p.ID, entity.MovementTypeInbound, 1, "")
	require.NoError(t, err)
	appended := make(chan error, 1)
	go func() { appended <- movs.Append(ctx, outside) }()

	select {
	case <-appended:
		t.Fatal("el append fuera de la transacción no debe confirmarse antes que ella")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-txDone)
	require.NoError(t, <-appended)

	list, err := movs.ListByProduct(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, outside.ID, list[0].ID, "el último confirmado es el primero")
	assert.Greater(t, list[0].ID, list[1].ID)

	bal, err := movs.Balance(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), bal)
}
