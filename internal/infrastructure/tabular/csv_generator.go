package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
)

var _ report.Generator = (*CSVGenerator)(nil)

// CSVGenerator CSV separado por ';' y codificado en Windows-1252: Excel en configuración
// regional es-CO lo abre con acentos correctos sin asistente de importación.
// Los caracteres sin representación en Windows-1252 se sustituyen.
type CSVGenerator struct{}

// NewCSVGenerator construye el generador.
func NewCSVGenerator() *CSVGenerator { return &CSVGenerator{} }

func (g *CSVGenerator) ContentType() string { return "text/csv; charset=windows-1252" }
func (g *CSVGenerator) Extension() string   { return "csv" }

func (g *CSVGenerator) Generate(_ context.Context, data report.Data) ([]byte, error) {
	var out bytes.Buffer
	enc := transform.NewWriter(&out, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))

	w := csv.NewWriter(enc)
	w.Comma = ';'
	w.UseCRLF = true
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("tabular: escribir encabezado csv: %w", err)
	}
	for _, t := range data.Transactions {
		if err := w.Write(record(t)); err != nil {
			return nil, fmt.Errorf("tabular: escribir fila csv %s: %w", t.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("tabular: csv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("tabular: codificar windows-1252: %w", err)
	}
	return out.Bytes(), nil
}
