package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// openingRow saldo inicial de una variante; con dealerID la cantidad se asigna a ese concesionario.
type openingRow struct {
	line         int
	variantID    int64
	quantity     int
	dealerID     *int64
	reorderLevel *int
}

// decodeInput acepta UTF-8 o Windows-1252 (exportaciones de Excel en es-CO).
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder())
}

// parseOpening lee "variante;cantidad;concesionario;punto_reorden" con encabezado.
// concesionario y punto_reorden son opcionales.
func parseOpening(r io.Reader) ([]openingRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("archivo sin filas de datos")
	}

	out := make([]openingRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos variante y cantidad", line)
		}
		row := openingRow{line: line}
		if row.variantID, err = strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64); err != nil || row.variantID <= 0 {
			return nil, fmt.Errorf("línea %d: variante inválida %q", line, rec[0])
		}
		if row.quantity, err = strconv.Atoi(strings.TrimSpace(rec[1])); err != nil || row.quantity < 0 {
			return nil, fmt.Errorf("línea %d: cantidad inválida %q", line, rec[1])
		}
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			d, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("línea %d: concesionario inválido %q", line, rec[2])
			}
			row.dealerID = &d
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(rec[3]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: punto de reorden inválido %q", line, rec[3])
			}
			row.reorderLevel = &n
		}
		out = append(out, row)
	}
	return out, nil
}
