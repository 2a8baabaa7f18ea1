package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-concesionarios/internal/application/report"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

func TestGenerate_ProducePDF(t *testing.T) {
	dealer := int64(4)
	now := time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	data := report.Data{
		From:        now.AddDate(0, -1, 0),
		To:          now,
		GeneratedAt: now,
		Transactions: []*entity.InventoryTransaction{
			{ID: "a", VariantID: 10, Type: entity.TransactionTypeSale, Quantity: 2, ToDealerID: &dealer, TransactionDate: now},
			{ID: "b", VariantID: 10, Type: entity.TransactionTypeRestock, Quantity: 1200, TransactionDate: now.Add(-time.Hour)},
		},
		Totals: []report.TypeTotals{{Type: entity.TransactionTypeSale, Count: 1, Units: 2}},
	}

	out, err := NewMarotoReportGenerator().Generate(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "0", formatUnits(0))
	assert.Equal(t, "999", formatUnits(999))
	assert.Equal(t, "25.000", formatUnits(25000))
	assert.Equal(t, "1.000.000", formatUnits(1000000))
	assert.Equal(t, "-1.500", formatUnits(-1500))
}

func TestLocation(t *testing.T) {
	d := int64(7)
	assert.Equal(t, "Central", location(nil))
	assert.Equal(t, "Conc. 7", location(&d))
}
