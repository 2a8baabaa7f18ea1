package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
	"github.com/jhoicas/inventario-concesionarios/internal/infrastructure/memory"
)

type recordingPublisher struct {
	alerts []*entity.StockAlert
	err    error
}

func (p *recordingPublisher) PublishStockAlert(_ context.Context, a *entity.StockAlert) error {
	p.alerts = append(p.alerts, a)
	return p.err
}

// failingAlertRepo falla para una variante concreta y delega el resto.
type failingAlertRepo struct {
	repository.StockAlertRepository
	failVariant int64
}

func (r *failingAlertRepo) CreateIfAbsent(ctx context.Context, a *entity.StockAlert) (bool, error) {
	if a.VariantID == r.failVariant {
		return false, errors.New("insert falló")
	}
	return r.StockAlertRepository.CreateIfAbsent(ctx, a)
}

func lowStockStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	seed(t, s, restock(1, 3), restock(2, 20), restock(3, 4), transfer(2, 9, 1))
	reorder := inventory.NewReorderUseCase(s.CentralRepository(), s.DealerRepository())
	ctx := context.Background()
	five := 5
	require.NoError(t, reorder.UpdateReorderLevel(ctx, 1, nil, &five))    // 3 < 5
	require.NoError(t, reorder.UpdateReorderLevel(ctx, 2, nil, &five))    // 19 >= 5
	require.NoError(t, reorder.UpdateReorderLevel(ctx, 3, nil, &five))    // 4 < 5
	require.NoError(t, reorder.UpdateReorderLevel(ctx, 2, id64(9), &five)) // 1 < 5
	return s
}

func TestScan_LevantaAlertasYEsIdempotente(t *testing.T) {
	s := lowStockStore(t)
	pub := &recordingPublisher{}
	m := inventory.NewStockAlertMonitor(s.CentralRepository(), s.DealerRepository(), s.AlertRepository(), pub, nil)
	ctx := context.Background()

	res, err := m.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventory.ScanResult{Checked: 3, Raised: 3}, res)
	assert.Len(t, pub.alerts, 3)

	res, err = m.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventory.ScanResult{Checked: 3, Raised: 0}, res, "sin cambios de stock no se duplican alertas")
	assert.Len(t, pub.alerts, 3)

	active, err := newQuery(s, nil).GetActiveAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)

	var dealerAlerts int
	for _, a := range active {
		assert.Equal(t, entity.AlertStatusNew, a.Status)
		if a.DealerID != nil {
			dealerAlerts++
			assert.Equal(t, entity.AlertTypeLowStockDealer, a.AlertType)
			assert.Equal(t, int64(2), a.VariantID)
			assert.Equal(t, 1, a.CurrentStock)
			assert.Equal(t, 5, a.Threshold)
		} else {
			assert.Equal(t, entity.AlertTypeLowStockCentral, a.AlertType)
		}
	}
	assert.Equal(t, 1, dealerAlerts)
}

func TestScan_FalloPorFilaNoDetieneLaPasada(t *testing.T) {
	s := lowStockStore(t)
	repo := &failingAlertRepo{StockAlertRepository: s.AlertRepository(), failVariant: 1}
	m := inventory.NewStockAlertMonitor(s.CentralRepository(), s.DealerRepository(), repo, nil, nil)

	res, err := m.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variante 1")
	assert.Equal(t, 3, res.Checked)
	assert.Equal(t, 2, res.Raised)
	assert.Equal(t, 1, res.Failures)
}

func TestScan_FalloAlPublicarNoEsFalloDeFila(t *testing.T) {
	s := lowStockStore(t)
	pub := &recordingPublisher{err: errors.New("broker caído")}
	m := inventory.NewStockAlertMonitor(s.CentralRepository(), s.DealerRepository(), s.AlertRepository(), pub, nil)

	res, err := m.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Raised)
}

func TestRun_EscaneaAlIniciarYSeDetiene(t *testing.T) {
	s := lowStockStore(t)
	m := inventory.NewStockAlertMonitor(s.CentralRepository(), s.DealerRepository(), s.AlertRepository(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		active, err := s.AlertRepository().ListActive(context.Background())
		return err == nil && len(active) == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}
