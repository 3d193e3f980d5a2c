package create_payment_intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/m04kA/PCS-CheckoutService/internal/integrations/stripeclient"
)

// UseCase use case создания/обновления платёжного интента
type UseCase struct {
	gateway      StripeGateway
	staleWindow  time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil, если сбор метрик отключен.
func NewUseCase(gateway StripeGateway, staleWindow time.Duration, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		gateway:      gateway,
		staleWindow:  staleWindow,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает новый или обновляет существующий платёжный интент.
// Инвариант: сумма на удалённом интенте всегда равна локально вычисленному
// итогу заказа; расхождение отклоняется до обращения к провайдеру.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentIntent: amount=%.2f, items=%d, cprSign=%t, existingIntent=%q, express=%t",
		req.Amount, len(req.Items), req.IncludeCPRSign, req.PaymentIntentID, req.IsExpressCheckout)

	// 1. Валидация входных данных и сверка суммы с каталогом
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePaymentIntent: validation failed: %v", err)
		uc.record("create", "rejected")
		return nil, err
	}

	// 2. Собираем metadata - единственную долговременную запись о бронировании
	input := stripeclient.IntentInput{
		AmountCents: toCents(req.Amount),
		Description: intentDescription(req.IncludeCPRSign),
		Metadata:    uc.buildMetadata(req),
	}
	if req.CustomerDetails != nil {
		input.ReceiptEmail = req.CustomerDetails.Email
	}

	// 3. Обновление на месте: известный интент и не-express поток.
	// Идентификатор интента сохраняется, меняются только сумма и metadata.
	if req.PaymentIntentID != "" && !req.IsExpressCheckout {
		intent, err := uc.gateway.UpdateIntent(ctx, req.PaymentIntentID, input)
		if err != nil {
			uc.record("update", "error")
			return nil, uc.mapGatewayErr("update", req.PaymentIntentID, err)
		}

		uc.record("update", "ok")
		uc.logger.Info("CreatePaymentIntent: updated intent id=%s, amount=%d", intent.ID, intent.Amount)
		return &Response{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
	}

	// 4. Перед созданием нового интента убираем брошенные интенты клиента.
	// Best-effort: отказ уборки никогда не блокирует создание.
	if req.CustomerDetails != nil && req.CustomerDetails.Email != "" {
		if n, err := uc.gateway.CancelStaleIntents(ctx, req.CustomerDetails.Email, uc.staleWindow); err != nil {
			uc.logger.Warn("CreatePaymentIntent: stale intent cleanup failed for email=%s: %v",
				req.CustomerDetails.Email, err)
		} else if n > 0 {
			uc.logger.Info("CreatePaymentIntent: cancelled %d stale intents for email=%s",
				n, req.CustomerDetails.Email)
		}
	}

	// 5. Создаем интент. setup_future_usage не устанавливается для express:
	// плательщик подтверждается только в момент оплаты.
	input.OffSession = !req.IsExpressCheckout

	intent, err := uc.gateway.CreateIntent(ctx, input)
	if err != nil {
		uc.record("create", "error")
		return nil, uc.mapGatewayErr("create", "", err)
	}

	uc.record("create", "ok")
	uc.logger.Info("CreatePaymentIntent: created intent id=%s, amount=%d, status=%s",
		intent.ID, intent.Amount, intent.Status)

	return &Response{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

// buildMetadata собирает плоский срез заказа и данных клиента
func (uc *UseCase) buildMetadata(req *Request) map[string]string {
	metadata := make(map[string]string)

	if req.CustomerDetails != nil {
		for k, v := range req.CustomerDetails.MetadataSnapshot() {
			metadata[k] = v
		}
	}

	names := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		names = append(names, item.Name)
	}
	// Ошибки маршалинга списка строк невозможны
	itemsJSON, _ := json.Marshal(names)

	metadata["items"] = string(itemsJSON)
	metadata["includeCprSign"] = strconv.FormatBool(req.IncludeCPRSign)
	metadata["createdAt"] = strconv.FormatInt(uc.timeProvider.Now().UnixMilli(), 10)

	return metadata
}

func (uc *UseCase) mapGatewayErr(op, intentID string, err error) error {
	switch {
	case errors.Is(err, stripeclient.ErrInvalidMetadata):
		uc.logger.Warn("CreatePaymentIntent: %s rejected, invalid metadata: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	case errors.Is(err, stripeclient.ErrRemoteUnavailable):
		uc.logger.Error("CreatePaymentIntent: provider unavailable on %s (intent=%q): %v", op, intentID, err)
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	default:
		uc.logger.Error("CreatePaymentIntent: %s failed (intent=%q): %v", op, intentID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) record(operation, result string) {
	if uc.metrics != nil {
		uc.metrics.RecordPaymentIntent(operation, result)
	}
}

func intentDescription(includeCPRSign bool) string {
	if includeCPRSign {
		return "Pool Safety Inspection with CPR Sign"
	}
	return "Pool Safety Inspection"
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
