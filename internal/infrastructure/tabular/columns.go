// Package tabular implementa los reportes "tabular" del ledger: SpreadsheetML 2003 (abre en Excel
// sin dependencias de OOXML) y CSV en Windows-1252 para versiones antiguas de Excel.
package tabular

import (
	"strconv"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{
	"transaction_id", "transaction_date", "transaction_type", "variant_id",
	"quantity", "from_dealer_id", "to_dealer_id", "staff_id", "notes",
}

// record convierte un movimiento en celdas de texto; nil de concesionario = vacío (bodega central).
func record(t *entity.InventoryTransaction) []string {
	return []string{
		t.ID,
		t.TransactionDate.Format(timeLayout),
		string(t.Type),
		strconv.FormatInt(t.VariantID, 10),
		strconv.Itoa(t.Quantity),
		optionalID(t.FromDealerID),
		optionalID(t.ToDealerID),
		strconv.FormatInt(t.StaffID, 10),
		t.Notes,
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
