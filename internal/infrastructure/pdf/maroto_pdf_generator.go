// Package pdf genera el reporte PDF del resumen de stock con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título  │  Fecha de generación                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Saldo | Mínimo | Estado              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos / bajo mínimo                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

var _ inventory.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador. appName aparece como autor del documento.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{title: appName}
}

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(
	ctx context.Context,
	rows []dto.StockSummaryRow,
	generatedAt time.Time,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de stock", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RESUMEN DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Saldos calculados desde el libro de movimientos", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Saldo", 2, align.Right),
		h("Mínimo", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableRows: una fila por producto activo; los que están bajo mínimo en rojo.
func tableRows(rows []dto.StockSummaryRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		status, color := "OK", colorGray
		if r.BelowMinimum {
			status, color = "BAJO MÍNIMO", colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.FormatInt(r.ProductID, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(r.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatUnits(r.Balance),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatUnits(r.MinimumStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(status,
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: color, Style: fontstyle.Bold})),
		))
	}
	return result
}

func totalsRow(rows []dto.StockSummaryRow) core.Row {
	below := 0
	for _, r := range rows {
		if r.BelowMinimum {
			below++
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(4).Add(
			label("Productos activos:"),
			text.New("Bajo mínimo:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5, Color: colorAlert}),
		),
		col.New(2).Add(
			value(strconv.Itoa(len(rows))),
			text.New(strconv.Itoa(below), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5, Color: colorAlert}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatUnits inserta puntos de miles conservando el signo.
// Ej: 25000 → "25.000", -1200 → "-1.200"
func formatUnits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
