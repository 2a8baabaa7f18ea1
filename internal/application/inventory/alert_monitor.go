package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/repository"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

// ScanResult resumen de una pasada del monitor.
type ScanResult struct {
	Checked  int // filas por debajo del punto de reorden
	Raised   int // alertas NEW creadas en esta pasada
	Failures int // filas que no se pudieron procesar
}

// StockAlertMonitor recorre central y concesionarios y levanta alertas LOW_STOCK.
// Es idempotente: la unicidad de la alerta NEW la garantiza el repositorio, así que varias
// instancias pueden ejecutar Scan a la vez sin duplicar. Nunca cierra alertas.
type StockAlertMonitor struct {
	centralRepo repository.CentralInventoryRepository
	dealerRepo  repository.DealerAllocationRepository
	alertRepo   repository.StockAlertRepository
	publisher   AlertPublisher
	log         *logger.Logger
	now         func() time.Time
}

// NewStockAlertMonitor construye el monitor. publisher y log pueden ser nil.
func NewStockAlertMonitor(
	centralRepo repository.CentralInventoryRepository,
	dealerRepo repository.DealerAllocationRepository,
	alertRepo repository.StockAlertRepository,
	publisher AlertPublisher,
	log *logger.Logger,
) *StockAlertMonitor {
	if log == nil {
		log = logger.Nop()
	}
	return &StockAlertMonitor{
		centralRepo: centralRepo,
		dealerRepo:  dealerRepo,
		alertRepo:   alertRepo,
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

// Scan ejecuta una pasada. El fallo de una fila no detiene las demás; los errores se
// acumulan y se devuelven unidos junto con los contadores.
func (m *StockAlertMonitor) Scan(ctx context.Context) (ScanResult, error) {
	var res ScanResult
	var errs []error

	centrals, err := m.centralRepo.ListBelowReorderLevel(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("listar central bajo reorden: %w", err))
	}
	for _, c := range centrals {
		if !c.BelowReorderLevel() {
			continue
		}
		res.Checked++
		alert := m.newAlert(c.VariantID, nil, entity.AlertTypeLowStockCentral, c.AvailableQuantity, *c.ReorderLevel)
		if err := m.raise(ctx, alert, &res); err != nil {
			errs = append(errs, fmt.Errorf("variante %d central: %w", c.VariantID, err))
		}
	}

	dealers, err := m.dealerRepo.ListBelowReorderLevel(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("listar concesionarios bajo reorden: %w", err))
	}
	for _, d := range dealers {
		if !d.BelowReorderLevel() {
			continue
		}
		res.Checked++
		dealerID := d.DealerID
		alert := m.newAlert(d.VariantID, &dealerID, entity.AlertTypeLowStockDealer, d.AvailableQuantity, *d.ReorderLevel)
		if err := m.raise(ctx, alert, &res); err != nil {
			errs = append(errs, fmt.Errorf("variante %d concesionario %d: %w", d.VariantID, d.DealerID, err))
		}
	}

	return res, errors.Join(errs...)
}

func (m *StockAlertMonitor) newAlert(variantID int64, dealerID *int64, alertType string, current, threshold int) *entity.StockAlert {
	return &entity.StockAlert{
		ID:           uuid.New().String(),
		VariantID:    variantID,
		DealerID:     dealerID,
		AlertType:    alertType,
		CurrentStock: current,
		Threshold:    threshold,
		Status:       entity.AlertStatusNew,
		CreatedAt:    m.now(),
	}
}

func (m *StockAlertMonitor) raise(ctx context.Context, alert *entity.StockAlert, res *ScanResult) error {
	created, err := m.alertRepo.CreateIfAbsent(ctx, alert)
	if err != nil {
		res.Failures++
		return err
	}
	if !created {
		return nil
	}
	res.Raised++
	if m.publisher == nil {
		return nil
	}
	// La alerta ya quedó persistida; un fallo al publicar solo se registra.
	if err := m.publisher.PublishStockAlert(ctx, alert); err != nil {
		m.log.Warn().Err(err).Str("alert_id", alert.ID).Msg("no se pudo publicar la alerta")
	}
	return nil
}

// Run ejecuta Scan de inmediato y luego en cada tick hasta que ctx se cancele.
func (m *StockAlertMonitor) Run(ctx context.Context, interval time.Duration) {
	m.scanAndLog(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("monitor de alertas detenido")
			return
		case <-ticker.C:
			m.scanAndLog(ctx)
		}
	}
}

func (m *StockAlertMonitor) scanAndLog(ctx context.Context) {
	start := m.now()
	res, err := m.Scan(ctx)
	ev := m.log.Info()
	if err != nil {
		ev = m.log.Error().Err(err)
	}
	ev.Int("checked", res.Checked).
		Int("raised", res.Raised).
		Int("failures", res.Failures).
		Dur("elapsed", time.Since(start)).
		Msg("escaneo de stock bajo")
}
