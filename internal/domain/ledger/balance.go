package ledger

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// SumBalance saldo = Σ entradas − Σ salidas. Lista vacía => 0.
func SumBalance(movements []*entity.StockMovement) int64 {
	var balance int64
	for _, m := range movements {
		balance += m.SignedQuantity()
	}
	return balance
}

// BelowMinimum indica si el saldo está por debajo del umbral del producto.
func BelowMinimum(balance int64, p *entity.Product) bool {
	return balance < p.MinimumStock
}
