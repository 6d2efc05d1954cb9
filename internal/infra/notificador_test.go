package infra

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"mimbres/internal/config"
	"mimbres/internal/dto"

	"github.com/jordan-wright/email"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func eventoPrueba() dto.PedidoCreadoEvento {
	return dto.PedidoCreadoEvento{
		PedidoID:         42,
		TelefonoWhatsapp: "5512345678",
		MontoEstimado:    decimal.RequireFromString("150.50"),
		Items:            2,
		FechaPedido:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaNotificador_PublishesEnvelopeKeyedByPedido(t *testing.T) {
	w := &fakeWriter{}
	k := &KafkaNotificador{w: w, cb: NewCircuitBreaker(CircuitBreakerConfig{})}

	require.NoError(t, k.PedidoCreado(context.Background(), eventoPrueba()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &env))
	assert.Equal(t, "pedido_web.creado", env.EventType)
	assert.NotEmpty(t, env.EventID)

	var ev dto.PedidoCreadoEvento
	require.NoError(t, json.Unmarshal(env.Payload, &ev))
	assert.Equal(t, int64(42), ev.PedidoID)
	assert.True(t, ev.MontoEstimado.Equal(decimal.RequireFromString("150.50")))
}

func TestKafkaNotificador_BreakerOpensOnRepeatedFailures(t *testing.T) {
	w := &fakeWriter{err: errors.New("no brokers")}
	k := &KafkaNotificador{w: w, cb: NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2})}

	_ = k.PedidoCreado(context.Background(), eventoPrueba())
	_ = k.PedidoCreado(context.Background(), eventoPrueba())
	assert.ErrorIs(t, k.PedidoCreado(context.Background(), eventoPrueba()), ErrCircuitOpen)
}

func TestMailer_BuildsOrderSummary(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "smtp.test", SMTPPort: 2525, NotifyEmail: "tienda@test"})
	var sent *email.Email
	var addr string
	m.send = func(e *email.Email, a string, auth smtp.Auth) error {
		sent, addr = e, a
		assert.Nil(t, auth, "no credentials configured")
		return nil
	}

	require.NoError(t, m.PedidoCreado(context.Background(), eventoPrueba()))
	require.NotNil(t, sent)
	assert.Equal(t, "smtp.test:2525", addr)
	assert.Equal(t, []string{"tienda@test"}, sent.To)
	assert.Equal(t, "Nuevo pedido web #42", sent.Subject)
	assert.True(t, strings.Contains(string(sent.Text), "$150.50"))
}
