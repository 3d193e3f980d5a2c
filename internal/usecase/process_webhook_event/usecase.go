package process_webhook_event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v74"

	"github.com/m04kA/PCS-CheckoutService/internal/domain"
	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

// Типы событий платёжного провайдера, которые обрабатывает reconciler
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventChargeRefunded   = "charge.refunded"
)

// UseCase use case обработки webhook-событий платёжного провайдера
type UseCase struct {
	gateway     StripeGateway
	notifier    Notifier
	journal     EventJournal
	staleWindow time.Duration
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil, если сбор метрик отключен.
func NewUseCase(
	gateway StripeGateway,
	notifier Notifier,
	journal EventJournal,
	staleWindow time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		gateway:     gateway,
		notifier:    notifier,
		journal:     journal,
		staleWindow: staleWindow,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute обрабатывает одно проверенное по подписи событие.
// Намеренно ничего не возвращает: после успешной проверки подписи событие
// всегда подтверждается провайдеру, иначе он будет бесконечно передоставлять
// событие из-за ошибки, которая не на его стороне. Все побочные эффекты
// идемпотентны, поэтому ручная повторная доставка безопасна.
func (uc *UseCase) Execute(ctx context.Context, event stripe.Event) {
	uc.logger.Info("ProcessWebhookEvent: received event id=%s, type=%s", event.ID, event.Type)

	// 1. Журнал повторных доставок. Best-effort: недоступность журнала
	// не блокирует обработку - побочные эффекты идемпотентны и без него.
	duplicate, err := uc.journal.MarkProcessed(ctx, event.ID, string(event.Type))
	if err != nil {
		uc.logger.Warn("ProcessWebhookEvent: event journal unavailable for id=%s: %v", event.ID, err)
		duplicate = false
	}

	// 2. Обработка по типу события. Повторная доставка пропускает побочные
	// эффекты, но не попутную уборку.
	switch {
	case duplicate:
		uc.logger.Info("ProcessWebhookEvent: duplicate delivery of event id=%s, skipping", event.ID)
		uc.record(string(event.Type), "duplicate")
	case string(event.Type) == EventPaymentSucceeded:
		uc.handlePaymentSucceeded(ctx, event)
	case string(event.Type) == EventPaymentFailed:
		uc.handlePaymentFailed(event)
	case string(event.Type) == EventChargeRefunded:
		uc.handleChargeRefunded(ctx, event)
	default:
		uc.logger.Info("ProcessWebhookEvent: ignoring event id=%s, type=%s", event.ID, event.Type)
		uc.record(string(event.Type), "ignored")
	}

	// 3. Попутная уборка: отмена зависших незавершённых интентов старше порога.
	// Дешёвый способ ограничить накопление брошенных резервов без отдельного шедулера.
	if n, err := uc.gateway.CancelStaleIntents(ctx, "", uc.staleWindow); err != nil {
		uc.logger.Warn("ProcessWebhookEvent: stale intent cleanup failed: %v", err)
	} else if n > 0 {
		uc.logger.Info("ProcessWebhookEvent: cancelled %d stale intents", n)
	}
}

// handlePaymentSucceeded финализирует бронирование: идемпотентный upsert
// клиента у провайдера (ключ - email) и два уведомления по metadata-снимку.
// Оба письма отправляются даже при частичном отказе upsert; отказ отправки
// логируется и не считается ошибкой обработки.
func (uc *UseCase) handlePaymentSucceeded(ctx context.Context, event stripe.Event) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		uc.logger.Error("ProcessWebhookEvent: failed to parse payment intent from event id=%s: %v", event.ID, err)
		uc.record(EventPaymentSucceeded, "error")
		return
	}

	email := intent.Metadata[domain.FieldEmail]
	if email == "" {
		email = intent.ReceiptEmail
	}
	if email == "" {
		uc.logger.Error("ProcessWebhookEvent: no customer email in payment intent id=%s", intent.ID)
		uc.record(EventPaymentSucceeded, "error")
		return
	}

	if _, err := uc.gateway.UpsertCustomerByEmail(ctx, email, customerMetadata(&intent)); err != nil {
		uc.logger.Error("ProcessWebhookEvent: customer upsert failed for email=%s, intent=%s: %v",
			email, intent.ID, err)
	}

	if err := uc.notifier.SendBookingNotifications(ctx, bookingFromIntent(&intent, email)); err != nil {
		// Отказ уведомления не ретраится и не влияет на подтверждение события
		uc.logger.Error("ProcessWebhookEvent: booking notifications failed for intent=%s: %v", intent.ID, err)
	}

	uc.record(EventPaymentSucceeded, "ok")
	uc.logger.Info("ProcessWebhookEvent: booking finalized for intent=%s, email=%s", intent.ID, email)
}

func (uc *UseCase) handlePaymentFailed(event stripe.Event) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		uc.logger.Error("ProcessWebhookEvent: failed to parse payment intent from event id=%s: %v", event.ID, err)
		uc.record(EventPaymentFailed, "error")
		return
	}

	uc.logger.Error("ProcessWebhookEvent: payment failed for intent=%s", intent.ID)
	uc.record(EventPaymentFailed, "ok")
}

func (uc *UseCase) handleChargeRefunded(ctx context.Context, event stripe.Event) {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		uc.logger.Error("ProcessWebhookEvent: failed to parse charge from event id=%s: %v", event.ID, err)
		uc.record(EventChargeRefunded, "error")
		return
	}

	email := charge.ReceiptEmail
	if email == "" && charge.BillingDetails != nil {
		email = charge.BillingDetails.Email
	}

	intentID := ""
	if charge.PaymentIntent != nil {
		intentID = charge.PaymentIntent.ID
	}

	refund := &models.RefundDetails{
		PaymentIntentID: intentID,
		Email:           email,
		Amount:          float64(charge.AmountRefunded) / 100,
	}

	if err := uc.notifier.SendRefundNotifications(ctx, refund); err != nil {
		uc.logger.Error("ProcessWebhookEvent: refund notifications failed for charge=%s: %v", charge.ID, err)
	}

	uc.record(EventChargeRefunded, "ok")
}

// customerMetadata собирает metadata для записи клиента у провайдера
func customerMetadata(intent *stripe.PaymentIntent) map[string]string {
	metadata := map[string]string{
		"paymentIntentId": intent.ID,
	}
	for _, field := range []string{
		domain.FieldFirstName,
		domain.FieldLastName,
		domain.FieldPhone,
		domain.FieldAddress,
		domain.FieldSuburb,
		domain.FieldPostcode,
		domain.FieldPreferredDate,
		domain.FieldNotes,
	} {
		metadata[field] = intent.Metadata[field]
	}
	metadata["includeCprSign"] = intent.Metadata["includeCprSign"]
	return metadata
}

// bookingFromIntent восстанавливает сводку бронирования из metadata-снимка
func bookingFromIntent(intent *stripe.PaymentIntent, email string) *models.BookingDetails {
	return &models.BookingDetails{
		PaymentIntentID: intent.ID,
		Email:           email,
		FirstName:       intent.Metadata[domain.FieldFirstName],
		LastName:        intent.Metadata[domain.FieldLastName],
		Phone:           intent.Metadata[domain.FieldPhone],
		Address:         intent.Metadata[domain.FieldAddress],
		Suburb:          intent.Metadata[domain.FieldSuburb],
		Postcode:        intent.Metadata[domain.FieldPostcode],
		PreferredDate:   intent.Metadata[domain.FieldPreferredDate],
		Notes:           intent.Metadata[domain.FieldNotes],
		IncludeCPRSign:  intent.Metadata["includeCprSign"] == "true",
		AmountPaid:      float64(intent.Amount) / 100,
	}
}

func (uc *UseCase) record(eventType, outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordWebhookEvent(eventType, outcome)
	}
}
