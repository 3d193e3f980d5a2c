package sendgridclient

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message одно исходящее письмо
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Plain   string
	ReplyTo string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент почтового провайдера (SendGrid)
type Client struct {
	sg       *sendgrid.Client
	fromName string
	fromAddr string
	log      Logger
}

// NewClient создает новый экземпляр клиента SendGrid.
// fromAddr должен быть верифицированным отправителем у провайдера.
func NewClient(apiKey, fromName, fromAddr string, log Logger) *Client {
	return &Client{
		sg:       sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
		log:      log,
	}
}

// Send отправляет одно письмо
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" || msg.Subject == "" {
		return fmt.Errorf("%w: recipient and subject are required", ErrInvalidMessage)
	}

	from := mail.NewEmail(c.fromName, c.fromAddr)
	to := mail.NewEmail(msg.ToName, msg.To)

	plain := msg.Plain
	if plain == "" {
		plain = msg.Subject
	}

	email := mail.NewSingleEmail(from, msg.Subject, to, plain, msg.HTML)
	if msg.ReplyTo != "" {
		email.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	resp, err := c.sg.SendWithContext(ctx, email)
	if err != nil {
		c.log.Error("Send: provider call failed for to=%s: %v", msg.To, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.StatusCode >= 400 {
		c.log.Error("Send: provider rejected message for to=%s: status=%d body=%s", msg.To, resp.StatusCode, resp.Body)
		return fmt.Errorf("%w: unexpected status code %d", ErrSendFailed, resp.StatusCode)
	}

	c.log.Info("Send: email sent to=%s, subject=%q", msg.To, msg.Subject)
	return nil
}
