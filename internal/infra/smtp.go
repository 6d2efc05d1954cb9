package infra

import (
	"context"
	"fmt"
	"net/smtp"

	"mimbres/internal/config"
	"mimbres/internal/dto"

	"github.com/jordan-wright/email"
)

// Mailer sends the staff notification for new web orders over SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	from     string
	to       string
	cb       *CircuitBreaker
	send     func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPUser
	if from == "" {
		from = "no-reply@mimbres.local"
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     from,
		to:       cfg.NotifyEmail,
		cb:       NewCircuitBreaker(CircuitBreakerConfig{}),
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (m *Mailer) Nombre() string { return "smtp" }

// PedidoCreado mails the order summary to NOTIFY_EMAIL.
func (m *Mailer) PedidoCreado(_ context.Context, ev dto.PedidoCreadoEvento) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{m.to}
	e.Subject = fmt.Sprintf("Nuevo pedido web #%d", ev.PedidoID)
	e.Text = []byte(fmt.Sprintf(
		"Pedido #%d\nWhatsApp: %s\nProductos: %d\nMonto estimado: $%s\nFecha: %s\n",
		ev.PedidoID, ev.TelefonoWhatsapp, ev.Items, ev.MontoEstimado.StringFixed(2),
		ev.FechaPedido.Format("02/01/2006 15:04"),
	))

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.cb.Execute(func() error { return m.send(e, m.addr, auth) })
}
