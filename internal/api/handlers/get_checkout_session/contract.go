package get_checkout_session

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout/models"
)

type CheckoutService interface {
	Get(ctx context.Context, sessionID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
