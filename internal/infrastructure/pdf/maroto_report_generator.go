// Package pdf implementa el reporte "document" del ledger de inventario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período        │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: movimientos y unidades por tipo                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Variante | Cant | Origen | Destino    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var typeLabels = map[entity.TransactionType]string{
	entity.TransactionTypeRestock:          "Reabastecimiento",
	entity.TransactionTypeTransferToDealer: "Traslado a concesionario",
	entity.TransactionTypeSale:             "Venta",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }
func (g *MarotoReportGenerator) Extension() string   { return "pdf" }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, data report.Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(data.Totals)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(data.Transactions)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(data.Transactions)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y fecha de generación (der).
func headerRow(data report.Data) core.Row {
	period := fmt.Sprintf("Período: %s al %s", data.From.Format("02/01/2006"), data.To.Format("02/01/2006"))
	return row.New(16).Add(
		col.New(8).Add(
			text.New("MOVIMIENTOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows: una fila por tipo con cantidad de movimientos y unidades.
func summaryRows(totals []report.TypeTotals) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RESUMEN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, t := range totals {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(typeLabel(t.Type), props.Text{Size: 8, Left: 2})),
			col.New(3).Add(text.New(strconv.Itoa(t.Count)+" mov.", props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(formatUnits(t.Units)+" und.", props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 3, align.Left),
		h("Variante", 2, align.Right),
		h("Cant.", 1, align.Right),
		h("Origen", 2, align.Center),
		h("Destino", 2, align.Center),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(txs []*entity.InventoryTransaction) []core.Row {
	result := make([]core.Row, 0, len(txs))
	cell := func(size int, s string, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, t := range txs {
		result = append(result, row.New(6).Add(
			cell(2, t.TransactionDate.Format("02/01/2006 15:04"), align.Left),
			cell(3, typeLabel(t.Type), align.Left),
			cell(2, strconv.FormatInt(t.VariantID, 10), align.Right),
			cell(1, formatUnits(t.Quantity), align.Right),
			cell(2, location(t.FromDealerID), align.Center),
			cell(2, location(t.ToDealerID), align.Center),
		))
	}
	return result
}

func footerRow(count int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de registros: %d", count), props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(t entity.TransactionType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// location nil = bodega central.
func location(dealerID *int64) string {
	if dealerID == nil {
		return "Central"
	}
	return "Conc. " + strconv.FormatInt(*dealerID, 10)
}

// formatUnits inserta puntos de miles. Ej: 25000 → "25.000"
func formatUnits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg, s = true, s[1:]
	}
	if len(s) > 3 {
		buf := make([]byte, 0, len(s)+len(s)/3)
		for i, c := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
