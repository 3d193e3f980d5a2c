package create_payment_intent

import (
	"context"
	"time"

	"github.com/m04kA/PCS-CheckoutService/internal/integrations/stripeclient"
)

// StripeGateway интерфейс клиента платёжного провайдера
type StripeGateway interface {
	CreateIntent(ctx context.Context, in stripeclient.IntentInput) (*stripeclient.Intent, error)
	UpdateIntent(ctx context.Context, intentID string, in stripeclient.IntentInput) (*stripeclient.Intent, error)
	CancelStaleIntents(ctx context.Context, customerEmail string, olderThan time.Duration) (int, error)
}

// Metrics интерфейс для записи метрик (опционально, может быть nil)
type Metrics interface {
	RecordPaymentIntent(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
