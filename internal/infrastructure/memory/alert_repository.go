package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// AlertRepo implementa repository.StockAlertRepository. La verificación y la inserción ocurren
// bajo el mismo mutex, equivalente al índice único parcial de PostgreSQL.
type AlertRepo struct {
	s *Store
}

func (r *AlertRepo) CreateIfAbsent(ctx context.Context, alert *entity.StockAlert) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.Status == entity.AlertStatusNew && a.VariantID == alert.VariantID && sameDealer(a.DealerID, alert.DealerID) {
			return false, nil
		}
	}
	r.s.alerts = append(r.s.alerts, copyAlert(alert))
	return true, nil
}

func (r *AlertRepo) ListActive(ctx context.Context) ([]*entity.StockAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockAlert
	for _, a := range r.s.alerts {
		if a.Status == entity.AlertStatusNew {
			out = append(out, copyAlert(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SetStatus simula el flujo externo de resolución (ACKNOWLEDGED / RESOLVED).
func (r *AlertRepo) SetStatus(ctx context.Context, alertID, status string) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.ID == alertID {
			a.Status = status
			return true
		}
	}
	return false
}

func sameDealer(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyAlert(a *entity.StockAlert) *entity.StockAlert {
	cp := *a
	cp.DealerID = cloneInt64(a.DealerID)
	return &cp
}
