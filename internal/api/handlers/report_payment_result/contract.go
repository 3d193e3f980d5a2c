package report_payment_result

import (
	"context"

	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout/models"
)

type CheckoutService interface {
	ReportPaymentResult(ctx context.Context, sessionID, status string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
