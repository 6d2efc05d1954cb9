package infra

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"mimbres/internal/dto"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	eventoPedidoCreado = "pedido_web.creado"
	productorMimbres   = "mimbres-backend"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotificador publishes web order events. Messages are keyed by order id
// so all events of one order land on the same partition.
type KafkaNotificador struct {
	w  messageWriter
	cb *CircuitBreaker
}

func NewKafkaNotificador(brokers []string, topic string) *KafkaNotificador {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           3 * time.Second,
	}
	return &KafkaNotificador{w: w, cb: NewCircuitBreaker(CircuitBreakerConfig{})}
}

func (k *KafkaNotificador) Nombre() string { return "kafka" }

func (k *KafkaNotificador) PedidoCreado(ctx context.Context, ev dto.PedidoCreadoEvento) error {
	msg, err := mensajePedido(ev, time.Now().UTC())
	if err != nil {
		return err
	}
	return k.cb.Execute(func() error { return k.w.WriteMessages(ctx, msg) })
}

func (k *KafkaNotificador) Close() error { return k.w.Close() }

func mensajePedido(ev dto.PedidoCreadoEvento, now time.Time) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	b, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventoPedidoCreado,
		OccurredAt: now,
		Producer:   productorMimbres,
		Payload:    payload,
	})
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.PedidoID, 10)),
		Value: b,
		Time:  now,
	}, nil
}
