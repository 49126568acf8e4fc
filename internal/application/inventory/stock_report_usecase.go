package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockReportUseCase reportes de solo lectura: resumen, bajo mínimo y exportaciones.
// Solo considera productos activos. No hay snapshot atómico multi-producto:
// cada saldo se lee por separado.
type StockReportUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	balances    BalanceReader
	pdf         SummaryPDFGenerator
	xlsx        StatementExporter
	now         func() time.Time
}

// NewStockReportUseCase construye el caso de uso de reportes.
// pdf y xlsx pueden ser nil si no se exponen las exportaciones.
func NewStockReportUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	balances BalanceReader,
	pdf SummaryPDFGenerator,
	xlsx StatementExporter,
) *StockReportUseCase {
	if balances == nil {
		balances = movRepo
	}
	return &StockReportUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		balances:    balances,
		pdf:         pdf,
		xlsx:        xlsx,
		now:         time.Now,
	}
}

// Summary devuelve una fila por producto activo con su saldo y la marca de bajo mínimo.
func (uc *StockReportUseCase) Summary(ctx context.Context) ([]dto.StockSummaryRow, error) {
	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockSummaryRow, 0, len(products))
	for _, p := range products {
		balance, err := uc.balances.Balance(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("saldo del producto %d: %w", p.ID, err)
		}
		rows = append(rows, dto.StockSummaryRow{
			ProductID:    p.ID,
			Name:         p.Name,
			Balance:      balance,
			MinimumStock: p.MinimumStock,
			BelowMinimum: ledger.BelowMinimum(balance, p),
		})
	}
	return rows, nil
}

// BelowMinimum igual que Summary pero solo con los productos bajo su umbral.
func (uc *StockReportUseCase) BelowMinimum(ctx context.Context) ([]dto.StockSummaryRow, error) {
	rows, err := uc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockSummaryRow, 0)
	for _, r := range rows {
		if r.BelowMinimum {
			out = append(out, r)
		}
	}
	return out, nil
}

// SummaryPDF genera el resumen en PDF. Devuelve (bytes, nombre de archivo).
func (uc *StockReportUseCase) SummaryPDF(ctx context.Context) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador PDF no configurado")
	}
	rows, err := uc.Summary(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	doc, err := uc.pdf.GenerateSummaryPDF(ctx, rows, now)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("resumen-stock-%s-%s.pdf", now.Format("20060102"), shortID()), nil
}

// StatementXLSX exporta el extracto completo de un producto (más reciente primero).
func (uc *StockReportUseCase) StatementXLSX(ctx context.Context, productID int64) ([]byte, string, error) {
	if uc.xlsx == nil {
		return nil, "", fmt.Errorf("exportador XLSX no configurado")
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}
	movements, err := uc.allMovements(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.xlsx.ExportStatement(ctx, product, ledger.SumBalance(movements), movements)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("extracto-%d-%s.xlsx", productID, shortID()), nil
}

// allMovements recorre el extracto página a página. Un append concurrente desplaza
// las filas hacia offsets mayores (nunca las salta), así que basta con descartar IDs repetidos.
func (uc *StockReportUseCase) allMovements(ctx context.Context, productID int64) ([]*entity.StockMovement, error) {
	seen := make(map[int64]struct{})
	var all []*entity.StockMovement
	for offset := 0; ; offset += dto.MaxPageLimit {
		page, err := uc.movRepo.ListByProduct(ctx, productID, dto.MaxPageLimit, offset)
		if err != nil {
			return nil, err
		}
		for _, m := range page {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			all = append(all, m)
		}
		if len(page) < dto.MaxPageLimit {
			return all, nil
		}
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}
