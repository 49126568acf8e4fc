package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la verificación de saldo y el append sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// BalanceReader lectura del saldo fuera de la transacción de escritura.
// Puede estar respaldado por una caché; la admisión NUNCA lo usa.
type BalanceReader interface {
	Balance(ctx context.Context, productID int64) (int64, error)
}

// MovementHook recibe notificaciones después de cada intento de registro
// (invalidación de caché, métricas). Se invoca fuera de la transacción.
type MovementHook interface {
	MovementAppended(ctx context.Context, movement *entity.StockMovement)
	MovementRejected(ctx context.Context, productID int64, err error)
}

// SummaryPDFGenerator genera el PDF del resumen de stock.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, rows []dto.StockSummaryRow, generatedAt time.Time) ([]byte, error)
}

// StatementExporter genera la hoja de cálculo del extracto de un producto.
type StatementExporter interface {
	ExportStatement(ctx context.Context, product *entity.Product, balance int64, movements []*entity.StockMovement) ([]byte, error)
}
