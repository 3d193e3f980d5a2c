package create_checkout_session

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout/models"
)

type CheckoutService interface {
	Create(ctx context.Context) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
