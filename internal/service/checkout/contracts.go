package checkout

import (
	"context"
	"time"

	"github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

// PaymentIntents интерфейс use case создания и обновления платёжных интентов
type PaymentIntents interface {
	Execute(ctx context.Context, req *create_payment_intent.Request) (*create_payment_intent.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
