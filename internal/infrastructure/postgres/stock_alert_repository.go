package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo alertas de stock bajo sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// CreateIfAbsent se apoya en el índice único parcial uq_stock_alerts_new:
// dos monitores concurrentes no pueden crear dos alertas NEW para el mismo par.
func (r *StockAlertRepo) CreateIfAbsent(ctx context.Context, a *entity.StockAlert) (bool, error) {
	query := `
		INSERT INTO stock_alerts (id, variant_id, dealer_id, alert_type, current_stock, threshold, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (variant_id, (COALESCE(dealer_id, 0))) WHERE status = 'NEW' DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.VariantID, a.DealerID, a.AlertType, a.CurrentStock, a.Threshold, a.Status, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("create stock alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListActive alertas NEW, más recientes primero.
func (r *StockAlertRepo) ListActive(ctx context.Context) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, variant_id, dealer_id, alert_type, current_stock, threshold, status, created_at
		FROM stock_alerts WHERE status = 'NEW'
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(
			&a.ID, &a.VariantID, &a.DealerID, &a.AlertType, &a.CurrentStock, &a.Threshold, &a.Status, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
