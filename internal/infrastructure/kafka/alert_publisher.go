package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventario-concesionarios/internal/application/dto"
	"github.com/jhoicas/inventario-concesionarios/internal/application/inventory"
	"github.com/jhoicas/inventario-concesionarios/internal/domain/entity"
)

// EventTypeStockAlertRaised tipo del evento publicado por cada alerta nueva.
const EventTypeStockAlertRaised = "StockAlertRaised"

var _ inventory.AlertPublisher = (*AlertPublisher)(nil)

// StockAlertEvent sobre del evento de alerta.
type StockAlertEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   dto.StockAlertDTO `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// AlertPublisher publica alertas en KAFKA_ALERT_TOPIC. La entrega de notificaciones es de otro servicio.
type AlertPublisher struct {
	producer Producer
}

// NewAlertPublisher construye el publicador.
func NewAlertPublisher(producer Producer) *AlertPublisher {
	return &AlertPublisher{producer: producer}
}

// PublishStockAlert la clave es la variante, así las alertas de una variante quedan en orden.
func (p *AlertPublisher) PublishStockAlert(ctx context.Context, a *entity.StockAlert) error {
	event := StockAlertEvent{
		EventID:   a.ID,
		EventType: EventTypeStockAlertRaised,
		Payload: dto.StockAlertDTO{
			AlertID:      a.ID,
			VariantID:    a.VariantID,
			DealerID:     a.DealerID,
			AlertType:    a.AlertType,
			CurrentStock: a.CurrentStock,
			Threshold:    a.Threshold,
			Status:       a.Status,
			CreatedAt:    a.CreatedAt,
		},
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar alerta: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(strconv.FormatInt(a.VariantID, 10)),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(EventTypeStockAlertRaised)},
		},
	}
	if err := p.producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar alerta %s: %w", a.ID, err)
	}
	return nil
}
