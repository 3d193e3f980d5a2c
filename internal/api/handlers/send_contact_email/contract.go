package send_contact_email

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

type NotificationService interface {
	SendContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
