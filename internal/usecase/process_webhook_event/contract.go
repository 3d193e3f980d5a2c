package process_webhook_event

import (
	"context"
	"time"

	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

// StripeGateway интерфейс клиента платёжного провайдера
type StripeGateway interface {
	UpsertCustomerByEmail(ctx context.Context, email string, metadata map[string]string) (string, error)
	CancelStaleIntents(ctx context.Context, customerEmail string, olderThan time.Duration) (int, error)
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	SendBookingNotifications(ctx context.Context, booking *models.BookingDetails) error
	SendRefundNotifications(ctx context.Context, refund *models.RefundDetails) error
}

// EventJournal журнал обработанных событий для распознавания повторной доставки.
// Провайдер доставляет события at-least-once.
type EventJournal interface {
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

// Metrics интерфейс для записи метрик (опционально, может быть nil)
type Metrics interface {
	RecordWebhookEvent(eventType, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
