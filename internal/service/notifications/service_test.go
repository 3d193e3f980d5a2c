package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCS-CheckoutService/internal/integrations/sendgridclient"
	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

const businessAddr = "bookings@example.com"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSender struct {
	sent   []sendgridclient.Message
	failTo map[string]error
}

func (f *fakeSender) Send(_ context.Context, msg sendgridclient.Message) error {
	f.sent = append(f.sent, msg)
	if err := f.failTo[msg.To]; err != nil {
		return err
	}
	return nil
}

func testBooking() *models.BookingDetails {
	return &models.BookingDetails{
		PaymentIntentID: "pi_1",
		Email:           "jane@example.com",
		FirstName:       "Jane",
		LastName:        "Citizen",
		Phone:           "0412345678",
		Address:         "12 Poolside Ave",
		Suburb:          "Glenelg",
		Postcode:        "5045",
		PreferredDate:   "2026-09-15",
		IncludeCPRSign:  true,
		AmountPaid:      240,
	}
}

func TestSendBookingNotifications(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendBookingNotifications(context.Background(), testBooking())

	require.NoError(t, err)
	// Ровно два письма: компании и плательщику
	require.Len(t, sender.sent, 2)

	business, customer := sender.sent[0], sender.sent[1]
	assert.Equal(t, businessAddr, business.To)
	assert.Equal(t, "jane@example.com", business.ReplyTo)
	assert.Contains(t, business.HTML, "jane@example.com")
	assert.Contains(t, business.HTML, "pi_1")

	assert.Equal(t, "jane@example.com", customer.To)
	assert.Contains(t, customer.HTML, "240.00")
	assert.Contains(t, customer.HTML, "CPR Sign")
	assert.Contains(t, customer.HTML, "pi_1")
}

func TestSendBookingNotifications_BusinessFailureDoesNotCancelCustomer(t *testing.T) {
	sender := &fakeSender{failTo: map[string]error{
		businessAddr: errors.New("mailbox full"),
	}}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendBookingNotifications(context.Background(), testBooking())

	// Отказ одного письма не отменяет второе, но фиксируется в ошибке
	assert.ErrorIs(t, err, ErrSendFailed)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@example.com", sender.sent[1].To)
}

func TestSendBookingNotifications_CustomerFailureDoesNotCancelBusiness(t *testing.T) {
	sender := &fakeSender{failTo: map[string]error{
		"jane@example.com": errors.New("address rejected"),
	}}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendBookingNotifications(context.Background(), testBooking())

	assert.ErrorIs(t, err, ErrSendFailed)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, businessAddr, sender.sent[0].To)
}

func TestSendRefundNotifications(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendRefundNotifications(context.Background(), &models.RefundDetails{
		PaymentIntentID: "pi_1",
		Email:           "jane@example.com",
		Amount:          210,
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@example.com", sender.sent[0].To)
	assert.Equal(t, businessAddr, sender.sent[1].To)
	assert.Contains(t, sender.sent[0].HTML, "210.00")
}

func TestSendRefundNotifications_NoCustomerEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendRefundNotifications(context.Background(), &models.RefundDetails{
		PaymentIntentID: "pi_1",
		Amount:          210,
	})

	require.NoError(t, err)
	// Без email плательщика уходит только письмо компании
	require.Len(t, sender.sent, 1)
	assert.Equal(t, businessAddr, sender.sent[0].To)
}

func TestSendContactMessage(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendContactMessage(context.Background(), &models.ContactMessage{
		Name:    "Jane Citizen",
		Email:   "jane@example.com",
		Phone:   "0412345678",
		Message: "Do you service Glenelg?",
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, businessAddr, sender.sent[0].To)
	assert.Equal(t, "jane@example.com", sender.sent[0].ReplyTo)
	assert.Contains(t, sender.sent[0].HTML, "Do you service Glenelg?")
}

func TestSendContactMessage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		msg  models.ContactMessage
	}{
		{
			name: "missing message",
			msg:  models.ContactMessage{Name: "Jane", Email: "jane@example.com", Phone: "0412345678"},
		},
		{
			name: "message too long",
			msg: models.ContactMessage{
				Name:    "Jane",
				Email:   "jane@example.com",
				Phone:   "0412345678",
				Message: strings.Repeat("a", 2001),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			svc := NewService(sender, businessAddr, nil, nopLogger{})

			err := svc.SendContactMessage(context.Background(), &tt.msg)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestSendContactMessage_SendFailure(t *testing.T) {
	sender := &fakeSender{failTo: map[string]error{businessAddr: errors.New("smtp down")}}
	svc := NewService(sender, businessAddr, nil, nopLogger{})

	err := svc.SendContactMessage(context.Background(), &models.ContactMessage{
		Name:    "Jane",
		Email:   "jane@example.com",
		Phone:   "0412345678",
		Message: "hello",
	})

	assert.ErrorIs(t, err, ErrSendFailed)
}
