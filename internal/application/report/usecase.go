// Package report genera exportaciones del ledger de inventario para un rango de fechas.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/internal/domain"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

// Formatos canónicos y sus alias aceptados por la API.
const (
	FormatXLS = "xls"
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var formatAliases = map[string]string{
	"":         FormatXLS,
	"tabular":  FormatXLS,
	"excel":    FormatXLS,
	"xls":      FormatXLS,
	"csv":      FormatCSV,
	"document": FormatPDF,
	"pdf":      FormatPDF,
}

// Document archivo listo para descargar.
type Document struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ReportUseCase lee el ledger de un período y lo entrega al generador del formato pedido.
type ReportUseCase struct {
	txRepo     repository.InventoryTransactionRepository
	generators map[string]Generator
	now        func() time.Time
}

// NewReportUseCase generators se indexa por formato canónico (FormatXLS, FormatCSV, FormatPDF).
func NewReportUseCase(txRepo repository.InventoryTransactionRepository, generators map[string]Generator) *ReportUseCase {
	return &ReportUseCase{txRepo: txRepo, generators: generators, now: time.Now}
}

// GenerateReport start/end en YYYY-MM-DD; end es inclusivo hasta el final del día.
// Sin start se toma el primer día del mes actual; sin end, el momento actual.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, startDate, endDate, format string) (*Document, error) {
	canonical, ok := formatAliases[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	gen, ok := uc.generators[canonical]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no disponible", domain.ErrInvalidInput, format)
	}

	now := uc.now()
	fromPtr, toPtr, err := dto.ParsePeriod(startDate, endDate, now.Location())
	if err != nil {
		return nil, err
	}
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if fromPtr != nil {
		from = *fromPtr
	}
	to := now
	if toPtr != nil {
		to = *toPtr
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}

	txs, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("report: leer ledger: %w", err)
	}

	content, err := gen.Generate(ctx, Data{
		From:         from,
		To:           to,
		GeneratedAt:  now,
		Transactions: txs,
		Totals:       summarize(txs),
	})
	if err != nil {
		return nil, fmt.Errorf("report: generar %s: %w", canonical, err)
	}
	return &Document{
		Content:     content,
		Filename:    fmt.Sprintf("inventario_%s_%s.%s", from.Format("20060102"), to.Format("20060102"), gen.Extension()),
		ContentType: gen.ContentType(),
	}, nil
}

// summarize totales en orden fijo de tipo, incluyendo tipos sin movimientos.
func summarize(txs []*entity.InventoryTransaction) []TypeTotals {
	order := []entity.TransactionType{
		entity.TransactionTypeRestock,
		entity.TransactionTypeTransferToDealer,
		entity.TransactionTypeSale,
	}
	idx := make(map[entity.TransactionType]int, len(order))
	out := make([]TypeTotals, len(order))
	for i, t := range order {
		idx[t] = i
		out[i].Type = t
	}
	for _, tx := range txs {
		i, ok := idx[tx.Type]
		if !ok {
			idx[tx.Type] = len(out)
			i = len(out)
			out = append(out, TypeTotals{Type: tx.Type})
		}
		out[i].Count++
		out[i].Units += tx.Quantity
	}
	return out
}
