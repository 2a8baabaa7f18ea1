// Package kafka conecta el ledger con el bus de eventos: consume solicitudes de movimiento
// de fulfillment y publica las alertas de stock bajo.
package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Consumer lo que el listener necesita de *kafkago.Reader.
type Consumer interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

// Producer lo que el publicador necesita de *kafkago.Writer.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewReader crea un consumidor con grupo (offsets confirmados por el grupo).
func NewReader(brokers []string, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewWriter crea un productor para un tópico.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
}
