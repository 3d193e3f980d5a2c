package stripeclient

import "github.com/stripe/stripe-go/v74"

// IntentInput параметры создания/обновления платёжного интента
type IntentInput struct {
	AmountCents  int64
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
	// OffSession включает setup_future_usage=off_session.
	// Для express-потока не устанавливается: плательщик ещё не известен.
	OffSession bool
}

// Intent локальное представление удалённого платёжного интента
type Intent struct {
	ID           string
	ClientSecret string
	Status       stripe.PaymentIntentStatus
	Amount       int64
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       pi.Status,
		Amount:       pi.Amount,
	}
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
