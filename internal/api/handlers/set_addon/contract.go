package set_addon

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout/models"
)

type CheckoutService interface {
	SetAddOn(ctx context.Context, sessionID string, include bool) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
