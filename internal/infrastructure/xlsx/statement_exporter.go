// Package xlsx exporta el extracto de movimientos de un producto a Excel (excelize).
package xlsx

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

var _ inventory.StatementExporter = (*StatementExporter)(nil)

const sheetName = "Extracto"

var headers = []string{"ID", "Fecha", "Tipo", "Cantidad", "Efecto", "Motivo"}

// StatementExporter genera un libro con una hoja: cabecera del producto y movimientos (más recientes primero).
type StatementExporter struct{}

// NewStatementExporter construye el exportador.
func NewStatementExporter() *StatementExporter { return &StatementExporter{} }

// ExportStatement devuelve el archivo .xlsx en bytes.
func (e *StatementExporter) ExportStatement(
	ctx context.Context,
	product *entity.Product,
	balance int64,
	movements []*entity.StockMovement,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22}) // m/d/yy h:mm
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo fecha: %w", err)
	}

	// Cabecera del producto
	summary := [][]interface{}{
		{"Producto", product.Name},
		{"ID", product.ID},
		{"Saldo", balance},
		{"Stock mínimo", product.MinimumStock},
	}
	for i, r := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	_ = f.SetCellStyle(sheetName, "A1", "A4", bold)

	// Tabla de movimientos
	const firstRow = 6
	headerCell, _ := excelize.CoordinatesToCellName(1, firstRow)
	if err := f.SetSheetRow(sheetName, headerCell, &headers); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), firstRow)
	_ = f.SetCellStyle(sheetName, headerCell, lastHeader, bold)

	for i, m := range movements {
		rowNo := firstRow + 1 + i
		cell, _ := excelize.CoordinatesToCellName(1, rowNo)
		values := []interface{}{m.ID, m.CreatedAt, string(m.Type), m.Quantity, m.SignedQuantity(), m.Reason}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
		}
		dateCell, _ := excelize.CoordinatesToCellName(2, rowNo)
		_ = f.SetCellStyle(sheetName, dateCell, dateCell, dateStyle)
	}

	_ = f.SetColWidth(sheetName, "B", "B", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
