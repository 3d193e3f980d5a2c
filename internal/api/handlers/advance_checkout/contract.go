package advance_checkout

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout/models"
)

type CheckoutService interface {
	Advance(ctx context.Context, sessionID string) (*models.SessionResponse, error)
	Back(ctx context.Context, sessionID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
