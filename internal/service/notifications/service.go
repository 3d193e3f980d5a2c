package notifications

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/m04kA/PCS-CheckoutService/internal/domain"
	"github.com/m04kA/PCS-CheckoutService/internal/integrations/sendgridclient"
	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

// Service сервис уведомлений по email
type Service struct {
	sender       EmailSender
	businessAddr string
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений.
// metrics может быть nil, если сбор метрик отключен.
func NewService(sender EmailSender, businessAddr string, metrics Metrics, logger Logger) *Service {
	return &Service{
		sender:       sender,
		businessAddr: businessAddr,
		metrics:      metrics,
		logger:       logger,
	}
}

// SendContactMessage пересылает сообщение контактной формы на адрес компании
func (s *Service) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg.Name == "" || msg.Email == "" || msg.Phone == "" || msg.Message == "" {
		return fmt.Errorf("%w: name, email, phone and message are required", ErrInvalidInput)
	}
	if len(msg.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	s.logger.Info("SendContactMessage: forwarding message from email=%s", msg.Email)

	err := s.sender.Send(ctx, sendgridclient.Message{
		To:      s.businessAddr,
		Subject: "New Contact Form Submission",
		HTML:    contactHTML(msg),
		ReplyTo: msg.Email,
	})
	if err != nil {
		s.record("contact", "error")
		s.logger.Error("SendContactMessage: send failed for email=%s: %v", msg.Email, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.record("contact", "ok")
	return nil
}

// SendBookingNotifications отправляет два уведомления о подтверждённом
// бронировании: компании и плательщику. Оба письма отправляются независимо,
// отказ одного не отменяет второе.
func (s *Service) SendBookingNotifications(ctx context.Context, booking *models.BookingDetails) error {
	s.logger.Info("SendBookingNotifications: booking intent=%s, email=%s",
		booking.PaymentIntentID, booking.Email)

	var failed []string

	if err := s.sender.Send(ctx, sendgridclient.Message{
		To:      s.businessAddr,
		Subject: fmt.Sprintf("New Pool Inspection Booking - %s %s", booking.FirstName, booking.LastName),
		HTML:    bookingBusinessHTML(booking),
		ReplyTo: booking.Email,
	}); err != nil {
		s.record("booking_business", "error")
		s.logger.Error("SendBookingNotifications: business notification failed for intent=%s: %v",
			booking.PaymentIntentID, err)
		failed = append(failed, "business")
	} else {
		s.record("booking_business", "ok")
	}

	if err := s.sender.Send(ctx, sendgridclient.Message{
		To:      booking.Email,
		ToName:  fmt.Sprintf("%s %s", booking.FirstName, booking.LastName),
		Subject: "Your Pool Safety Inspection Booking",
		HTML:    bookingCustomerHTML(booking),
	}); err != nil {
		s.record("booking_customer", "error")
		s.logger.Error("SendBookingNotifications: customer notification failed for intent=%s: %v",
			booking.PaymentIntentID, err)
		failed = append(failed, "customer")
	} else {
		s.record("booking_customer", "ok")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrSendFailed, strings.Join(failed, ", "))
	}
	return nil
}

// SendRefundNotifications отправляет уведомления о возврате платежа
// плательщику и компании
func (s *Service) SendRefundNotifications(ctx context.Context, refund *models.RefundDetails) error {
	s.logger.Info("SendRefundNotifications: refund intent=%s, email=%s",
		refund.PaymentIntentID, refund.Email)

	var failed []string

	if refund.Email != "" {
		if err := s.sender.Send(ctx, sendgridclient.Message{
			To:      refund.Email,
			Subject: "Your Pool Safety Inspection Refund",
			HTML:    refundCustomerHTML(refund),
		}); err != nil {
			s.record("refund_customer", "error")
			s.logger.Error("SendRefundNotifications: customer notification failed for intent=%s: %v",
				refund.PaymentIntentID, err)
			failed = append(failed, "customer")
		} else {
			s.record("refund_customer", "ok")
		}
	}

	if err := s.sender.Send(ctx, sendgridclient.Message{
		To:      s.businessAddr,
		Subject: fmt.Sprintf("Refund Processed - %s", refund.PaymentIntentID),
		HTML:    refundBusinessHTML(refund),
	}); err != nil {
		s.record("refund_business", "error")
		s.logger.Error("SendRefundNotifications: business notification failed for intent=%s: %v",
			refund.PaymentIntentID, err)
		failed = append(failed, "business")
	} else {
		s.record("refund_business", "ok")
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrSendFailed, strings.Join(failed, ", "))
	}
	return nil
}

func (s *Service) record(kind, result string) {
	if s.metrics != nil {
		s.metrics.RecordEmail(kind, result)
	}
}

func contactHTML(msg *models.ContactMessage) string {
	return fmt.Sprintf(`
		<h2>New Contact Form Submission</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Message:</strong></p>
		<p>%s</p>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Phone),
		html.EscapeString(msg.Message),
	)
}

func bookingBusinessHTML(b *models.BookingDetails) string {
	return fmt.Sprintf(`
		<h2>New Pool Inspection Booking</h2>
		<p><strong>Name:</strong> %s %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Address:</strong> %s, %s %s</p>
		<p><strong>Preferred date:</strong> %s</p>
		<p><strong>CPR sign:</strong> %s</p>
		<p><strong>Amount paid:</strong> $%.2f AUD</p>
		<p><strong>Notes:</strong> %s</p>
		<p>Payment reference: %s</p>`,
		html.EscapeString(b.FirstName), html.EscapeString(b.LastName),
		html.EscapeString(b.Email),
		html.EscapeString(b.Phone),
		html.EscapeString(b.Address), html.EscapeString(b.Suburb), html.EscapeString(b.Postcode),
		html.EscapeString(b.PreferredDate),
		yesNo(b.IncludeCPRSign),
		b.AmountPaid,
		html.EscapeString(b.Notes),
		html.EscapeString(b.PaymentIntentID),
	)
}

func bookingCustomerHTML(b *models.BookingDetails) string {
	service := "Pool Safety Inspection"
	if b.IncludeCPRSign {
		service = "Pool Safety Inspection with CPR Sign"
	}
	return fmt.Sprintf(`
		<h2>Thank you for your booking, %s!</h2>
		<p>We have received your payment of <strong>$%.2f AUD</strong> for a %s.</p>
		<p><strong>Inspection address:</strong> %s, %s %s</p>
		<p><strong>Preferred date:</strong> %s</p>
		<p>We will contact you on %s to confirm the inspection time.</p>
		<p>Payment reference: %s</p>`,
		html.EscapeString(b.FirstName),
		b.AmountPaid,
		service,
		html.EscapeString(b.Address), html.EscapeString(b.Suburb), html.EscapeString(b.Postcode),
		html.EscapeString(b.PreferredDate),
		html.EscapeString(b.Phone),
		html.EscapeString(b.PaymentIntentID),
	)
}

func refundCustomerHTML(r *models.RefundDetails) string {
	return fmt.Sprintf(`
		<h2>Your refund has been processed</h2>
		<p>We have refunded <strong>$%.2f AUD</strong> for your pool safety inspection booking.</p>
		<p>Payment reference: %s</p>`,
		r.Amount,
		html.EscapeString(r.PaymentIntentID),
	)
}

func refundBusinessHTML(r *models.RefundDetails) string {
	return fmt.Sprintf(`
		<h2>Refund Processed</h2>
		<p><strong>Customer:</strong> %s</p>
		<p><strong>Amount:</strong> $%.2f AUD</p>
		<p><strong>Payment reference:</strong> %s</p>`,
		html.EscapeString(r.Email),
		r.Amount,
		html.EscapeString(r.PaymentIntentID),
	)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
