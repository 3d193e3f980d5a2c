package process_webhook_event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type upsertCall struct {
	email    string
	metadata map[string]string
}

type fakeGateway struct {
	upsertCalls []upsertCall
	cancelCalls []string
	upsertErr   error
}

func (g *fakeGateway) UpsertCustomerByEmail(_ context.Context, email string, metadata map[string]string) (string, error) {
	g.upsertCalls = append(g.upsertCalls, upsertCall{email: email, metadata: metadata})
	if g.upsertErr != nil {
		return "", g.upsertErr
	}
	return "cus_1", nil
}

func (g *fakeGateway) CancelStaleIntents(_ context.Context, email string, _ time.Duration) (int, error) {
	g.cancelCalls = append(g.cancelCalls, email)
	return 0, nil
}

type fakeNotifier struct {
	bookings []*models.BookingDetails
	refunds  []*models.RefundDetails
	sendErr  error
}

func (n *fakeNotifier) SendBookingNotifications(_ context.Context, b *models.BookingDetails) error {
	n.bookings = append(n.bookings, b)
	return n.sendErr
}

func (n *fakeNotifier) SendRefundNotifications(_ context.Context, r *models.RefundDetails) error {
	n.refunds = append(n.refunds, r)
	return n.sendErr
}

type fakeJournal struct {
	seen map[string]bool
	err  error
}

func (j *fakeJournal) MarkProcessed(_ context.Context, eventID, _ string) (bool, error) {
	if j.err != nil {
		return false, j.err
	}
	if j.seen == nil {
		j.seen = make(map[string]bool)
	}
	if j.seen[eventID] {
		return true, nil
	}
	j.seen[eventID] = true
	return false, nil
}

func newTestUseCase(gateway *fakeGateway, notifier *fakeNotifier, journal *fakeJournal) *UseCase {
	return NewUseCase(gateway, notifier, journal, 30*time.Minute, nil, nopLogger{})
}

func succeededEvent(t *testing.T, eventID string) stripe.Event {
	t.Helper()

	raw, err := json.Marshal(map[string]interface{}{
		"id":     "pi_1",
		"amount": 24000,
		"metadata": map[string]string{
			"firstName":      "Jane",
			"lastName":       "Citizen",
			"email":          "a@b.com",
			"phone":          "0412345678",
			"address":        "12 Poolside Ave",
			"suburb":         "Glenelg",
			"postcode":       "5045",
			"preferredDate":  "2026-09-15",
			"includeCprSign": "true",
		},
	})
	require.NoError(t, err)

	return stripe.Event{
		ID:   eventID,
		Type: EventPaymentSucceeded,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestExecute_PaymentSucceeded(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	uc.Execute(context.Background(), succeededEvent(t, "evt_1"))

	// Ровно один upsert клиента по email из metadata
	require.Len(t, gateway.upsertCalls, 1)
	assert.Equal(t, "a@b.com", gateway.upsertCalls[0].email)
	assert.Equal(t, "pi_1", gateway.upsertCalls[0].metadata["paymentIntentId"])

	// Ровно одна пара уведомлений (бизнес + плательщик внутри одного вызова)
	require.Len(t, notifier.bookings, 1)
	booking := notifier.bookings[0]
	assert.Equal(t, "a@b.com", booking.Email)
	assert.Equal(t, "pi_1", booking.PaymentIntentID)
	assert.Equal(t, 240.0, booking.AmountPaid)
	assert.True(t, booking.IncludeCPRSign)

	// Попутная уборка зависших интентов выполняется на каждом вызове
	require.Len(t, gateway.cancelCalls, 1)
	assert.Equal(t, "", gateway.cancelCalls[0])
}

func TestExecute_DuplicateEventSkipsSideEffects(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	uc.Execute(context.Background(), succeededEvent(t, "evt_dup"))
	uc.Execute(context.Background(), succeededEvent(t, "evt_dup"))

	// Повторная доставка того же события не создает новых побочных эффектов
	assert.Len(t, gateway.upsertCalls, 1)
	assert.Len(t, notifier.bookings, 1)
	// Уборка при этом выполняется на каждом вызове
	assert.Len(t, gateway.cancelCalls, 2)
}

func TestExecute_JournalFailureDoesNotBlockProcessing(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{err: errors.New("connection refused")}
	uc := newTestUseCase(gateway, notifier, journal)

	uc.Execute(context.Background(), succeededEvent(t, "evt_2"))

	assert.Len(t, gateway.upsertCalls, 1)
	assert.Len(t, notifier.bookings, 1)
}

func TestExecute_NotificationsAttemptedEvenIfUpsertFails(t *testing.T) {
	gateway := &fakeGateway{upsertErr: fmt.Errorf("provider unavailable")}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	uc.Execute(context.Background(), succeededEvent(t, "evt_3"))

	assert.Len(t, gateway.upsertCalls, 1)
	assert.Len(t, notifier.bookings, 1)
}

func TestExecute_NotificationFailureIsSwallowed(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{sendErr: errors.New("smtp down")}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	// Отказ отправки логируется и не прерывает обработку
	uc.Execute(context.Background(), succeededEvent(t, "evt_4"))

	assert.Len(t, notifier.bookings, 1)
	assert.Len(t, gateway.cancelCalls, 1)
}

func TestExecute_MissingEmailLoggedOnly(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	raw, err := json.Marshal(map[string]interface{}{"id": "pi_no_email", "amount": 21000})
	require.NoError(t, err)

	uc.Execute(context.Background(), stripe.Event{
		ID:   "evt_5",
		Type: EventPaymentSucceeded,
		Data: &stripe.EventData{Raw: raw},
	})

	assert.Empty(t, gateway.upsertCalls)
	assert.Empty(t, notifier.bookings)
	// Уборка все равно выполняется
	assert.Len(t, gateway.cancelCalls, 1)
}

func TestExecute_PaymentFailedLogsOnly(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	raw, err := json.Marshal(map[string]interface{}{"id": "pi_failed"})
	require.NoError(t, err)

	uc.Execute(context.Background(), stripe.Event{
		ID:   "evt_6",
		Type: EventPaymentFailed,
		Data: &stripe.EventData{Raw: raw},
	})

	assert.Empty(t, gateway.upsertCalls)
	assert.Empty(t, notifier.bookings)
	assert.Empty(t, notifier.refunds)
}

func TestExecute_ChargeRefunded(t *testing.T) {
	gateway := &fakeGateway{}
	notifier := &fakeNotifier{}
	journal := &fakeJournal{}
	uc := newTestUseCase(gateway, notifier, journal)

	raw, err := json.Marshal(map[string]interface{}{
		"id":              "ch_1",
		"amount_refunded": 21000,
		"receipt_email":   "a@b.com",
		"payment_intent":  map[string]interface{}{"id": "pi_1"},
	})
	require.NoError(t, err)

	uc.Execute(context.Background(), stripe.Event{
		ID:   "evt_7",
		Type: EventChargeRefunded,
		Data: &stripe.EventData{Raw: raw},
	})

	require.Len(t, notifier.refunds, 1)
	refund := notifier.refunds[0]
	assert.Equal(t, "a@b.com", refund.Email)
	assert.Equal(t, "pi_1", refund.PaymentIntentID)
	assert.Equal(t, 210.0, refund.Amount)
}
