package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/pkg/logger"
)

// EventTypeStockMovementRequested único tipo de evento que procesa el listener.
const EventTypeStockMovementRequested = "StockMovementRequested"

// StockMovementEvent sobre publicado por fulfillment / operaciones de bodega.
type StockMovementEvent struct {
	EventID   string                        `json:"event_id"`
	EventType string                        `json:"event_type"`
	Payload   dto.ExecuteTransactionRequest `json:"payload"`
	Timestamp time.Time                     `json:"timestamp"`
}

// TransactionExecutor el procesador de transacciones visto desde el borde de mensajería.
type TransactionExecutor interface {
	ExecuteFromRequest(ctx context.Context, in dto.ExecuteTransactionRequest) (*dto.TransactionResponse, error)
}

// FulfillmentListener ejecuta cada StockMovementRequested contra el procesador.
// Los errores (validación, stock insuficiente) se registran por evento; no detienen el consumo.
type FulfillmentListener struct {
	consumer Consumer
	uc       TransactionExecutor
	log      *logger.Logger
	backoff  time.Duration
}

// NewFulfillmentListener construye el listener.
func NewFulfillmentListener(consumer Consumer, uc TransactionExecutor, log *logger.Logger) *FulfillmentListener {
	if log == nil {
		log = logger.Nop()
	}
	return &FulfillmentListener{consumer: consumer, uc: uc, log: log, backoff: time.Second}
}

// Start consume hasta que ctx se cancele.
func (l *FulfillmentListener) Start(ctx context.Context) {
	l.log.Info().Msg("iniciando listener de movimientos de stock")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.log.Info().Msg("listener de movimientos de stock detenido")
				return
			}
			l.log.Error().Err(err).Msg("error leyendo mensaje de kafka")
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.backoff):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

// processMessage devuelve true si el movimiento quedó confirmado.
func (l *FulfillmentListener) processMessage(ctx context.Context, value []byte) bool {
	var event StockMovementEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.log.Error().Err(err).Msg("evento ilegible")
		return false
	}
	if event.EventType != EventTypeStockMovementRequested {
		return false
	}

	out, err := l.uc.ExecuteFromRequest(ctx, event.Payload)
	if err != nil {
		l.log.Error().Err(err).
			Str("event_id", event.EventID).
			Int64("variant_id", event.Payload.VariantID).
			Str("type", event.Payload.TransactionType).
			Msg("no se pudo aplicar el movimiento")
		return false
	}
	l.log.Info().
		Str("event_id", event.EventID).
		Str("transaction_id", out.TransactionID).
		Msg("movimiento aplicado desde evento")
	return true
}
