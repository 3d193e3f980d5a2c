package stripeclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/m04kA/PCS-CheckoutService/internal/domain"
)

// staleListLimit сколько интентов просматривается за одну уборку
const staleListLimit = 20

// Статусы, в которых незавершённый интент можно отменить
var cancelableStatuses = map[stripe.PaymentIntentStatus]bool{
	stripe.PaymentIntentStatusRequiresPaymentMethod: true,
	stripe.PaymentIntentStatusRequiresConfirmation:  true,
	stripe.PaymentIntentStatusRequiresAction:        true,
}

// Client клиент платёжного провайдера (Stripe)
type Client struct {
	api           *client.API
	webhookSecret string
	log           Logger
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(secretKey, webhookSecret string, log Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:           api,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateIntent создает новый платёжный интент
func (c *Client) CreateIntent(ctx context.Context, in IntentInput) (*Intent, error) {
	if err := validateMetadata(in.Metadata); err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(in.AmountCents),
		Currency: stripe.String(domain.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	applyIntentInput(params, in)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.log.Error("CreateIntent: provider call failed: %v", err)
		return nil, c.wrapErr("create intent", err)
	}

	c.log.Info("CreateIntent: created intent id=%s, amount=%d, status=%s", pi.ID, pi.Amount, pi.Status)
	return fromStripeIntent(pi), nil
}

// UpdateIntent обновляет сумму и metadata существующего интента,
// сохраняя его идентификатор. Одна сессия оформления - максимум один живой интент.
func (c *Client) UpdateIntent(ctx context.Context, intentID string, in IntentInput) (*Intent, error) {
	if err := validateMetadata(in.Metadata); err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(in.AmountCents),
		Currency: stripe.String(domain.Currency),
	}
	applyIntentInput(params, in)

	pi, err := c.api.PaymentIntents.Update(intentID, params)
	if err != nil {
		c.log.Error("UpdateIntent: provider call failed for intent id=%s: %v", intentID, err)
		return nil, c.wrapErr("update intent", err)
	}

	c.log.Info("UpdateIntent: updated intent id=%s, amount=%d, status=%s", pi.ID, pi.Amount, pi.Status)
	return fromStripeIntent(pi), nil
}

// CancelStaleIntents отменяет незавершённые интенты старше olderThan.
// Если customerEmail не пустой, отменяются только интенты этого клиента
// (по metadata.email или receipt_email). Best-effort: ошибки логируются,
// но не блокируют вызывающий поток.
func (c *Client) CancelStaleIntents(ctx context.Context, customerEmail string, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan).Unix()

	listParams := &stripe.PaymentIntentListParams{
		CreatedRange: &stripe.RangeQueryParams{
			LesserThanOrEqual: cutoff,
		},
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(staleListLimit)

	cancelled := 0
	iter := c.api.PaymentIntents.List(listParams)
	for iter.Next() {
		pi := iter.PaymentIntent()

		if !cancelableStatuses[pi.Status] {
			continue
		}
		if customerEmail != "" && pi.Metadata[domain.FieldEmail] != customerEmail && pi.ReceiptEmail != customerEmail {
			continue
		}

		cancelParams := &stripe.PaymentIntentCancelParams{
			Params: stripe.Params{Context: ctx},
		}
		if _, err := c.api.PaymentIntents.Cancel(pi.ID, cancelParams); err != nil {
			c.log.Warn("CancelStaleIntents: failed to cancel intent id=%s: %v", pi.ID, err)
			continue
		}

		c.log.Info("CancelStaleIntents: cancelled stale intent id=%s, status=%s", pi.ID, pi.Status)
		cancelled++
	}

	if err := iter.Err(); err != nil {
		return cancelled, c.wrapErr("list intents", err)
	}

	return cancelled, nil
}

// UpsertCustomerByEmail идемпотентно создает или обновляет клиента у провайдера.
// Ключ - email: существующий клиент получает обновлённую metadata,
// дубликаты записей не создаются.
func (c *Client) UpsertCustomerByEmail(ctx context.Context, email string, metadata map[string]string) (string, error) {
	if err := validateMetadata(metadata); err != nil {
		return "", err
	}

	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	iter := c.api.Customers.List(listParams)
	if iter.Next() {
		existing := iter.Customer()

		params := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}
		for k, v := range metadata {
			params.AddMetadata(k, v)
		}

		updated, err := c.api.Customers.Update(existing.ID, params)
		if err != nil {
			return "", c.wrapErr("update customer", err)
		}

		c.log.Info("UpsertCustomerByEmail: updated customer id=%s, email=%s", updated.ID, email)
		return updated.ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", c.wrapErr("list customers", err)
	}

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	created, err := c.api.Customers.New(params)
	if err != nil {
		return "", c.wrapErr("create customer", err)
	}

	c.log.Info("UpsertCustomerByEmail: created customer id=%s, email=%s", created.ID, email)
	return created.ID, nil
}

// VerifyEvent проверяет подпись webhook-события по общему секрету
// и возвращает разобранное событие
func (c *Client) VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, c.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrSignatureVerification, err)
	}
	return event, nil
}

// validateMetadata проверяет лимиты провайдера на значения metadata
func validateMetadata(metadata map[string]string) error {
	for k, v := range metadata {
		if len(v) > domain.MaxMetadataValueLength {
			return fmt.Errorf("%w: value for %q exceeds %d characters", ErrInvalidMetadata, k, domain.MaxMetadataValueLength)
		}
	}
	return nil
}

func applyIntentInput(params *stripe.PaymentIntentParams, in IntentInput) {
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	if in.OffSession {
		params.SetupFutureUsage = stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession))
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
}

func (c *Client) wrapErr(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRequest, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, op, err)
}
