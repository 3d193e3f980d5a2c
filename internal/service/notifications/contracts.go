package notifications

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/integrations/sendgridclient"
)

// EmailSender интерфейс почтового клиента
type EmailSender interface {
	Send(ctx context.Context, msg sendgridclient.Message) error
}

// Metrics интерфейс для записи метрик (опционально, может быть nil)
type Metrics interface {
	RecordEmail(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
