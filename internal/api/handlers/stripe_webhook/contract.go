package stripe_webhook

import (
	"context"

	"github.com/stripe/stripe-go/v74"
)

// EventVerifier проверяет подпись сырого payload вебхука
type EventVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

// ProcessWebhookUseCase обрабатывает проверенное событие.
// Ничего не возвращает: после проверки подписи событие всегда подтверждается.
type ProcessWebhookUseCase interface {
	Execute(ctx context.Context, event stripe.Event)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
