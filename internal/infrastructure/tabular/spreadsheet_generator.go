package tabular

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
)

const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
)

// Columnas numéricas de header (variant_id, quantity, staff_id).
var numericColumns = map[int]bool{3: true, 4: true, 7: true}

var _ report.Generator = (*SpreadsheetGenerator)(nil)

// SpreadsheetGenerator XML Spreadsheet 2003 con dos hojas: Movimientos y Resumen.
type SpreadsheetGenerator struct{}

// NewSpreadsheetGenerator construye el generador.
func NewSpreadsheetGenerator() *SpreadsheetGenerator { return &SpreadsheetGenerator{} }

func (g *SpreadsheetGenerator) ContentType() string { return "application/vnd.ms-excel" }
func (g *SpreadsheetGenerator) Extension() string   { return "xls" }

// Generate construye el documento con etree.
func (g *SpreadsheetGenerator) Generate(_ context.Context, data report.Data) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	wb := doc.CreateElement("Workbook")
	wb.CreateAttr("xmlns", nsSpreadsheet)
	wb.CreateAttr("xmlns:o", nsOffice)
	wb.CreateAttr("xmlns:x", nsExcel)
	wb.CreateAttr("xmlns:ss", nsSpreadsheet)

	styles := wb.CreateElement("Styles")
	hdr := styles.CreateElement("Style")
	hdr.CreateAttr("ss:ID", "header")
	font := hdr.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")

	// Hoja 1: movimientos
	table := worksheet(wb, "Movimientos")
	addRow(table, header, nil, "header")
	for _, t := range data.Transactions {
		addRow(table, record(t), numericColumns, "")
	}

	// Hoja 2: resumen por tipo
	summary := worksheet(wb, "Resumen")
	addRow(summary, []string{"period_from", data.From.Format(timeLayout)}, nil, "")
	addRow(summary, []string{"period_to", data.To.Format(timeLayout)}, nil, "")
	addRow(summary, []string{"transaction_type", "count", "units"}, nil, "header")
	for _, tt := range data.Totals {
		addRow(summary, []string{string(tt.Type), strconv.Itoa(tt.Count), strconv.Itoa(tt.Units)},
			map[int]bool{1: true, 2: true}, "")
	}

	doc.Indent(1)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("tabular: escribir SpreadsheetML: %w", err)
	}
	return out.Bytes(), nil
}

func worksheet(wb *etree.Element, name string) *etree.Element {
	ws := wb.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", name)
	return ws.CreateElement("Table")
}

// addRow numeric indica las columnas que se escriben como ss:Type="Number".
func addRow(table *etree.Element, cells []string, numeric map[int]bool, style string) {
	r := table.CreateElement("Row")
	for i, v := range cells {
		c := r.CreateElement("Cell")
		if style != "" {
			c.CreateAttr("ss:StyleID", style)
		}
		d := c.CreateElement("Data")
		if numeric[i] && v != "" {
			d.CreateAttr("ss:Type", "Number")
		} else {
			d.CreateAttr("ss:Type", "String")
		}
		d.SetText(v)
	}
}
