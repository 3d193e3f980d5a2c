package create_payment_intent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCS-CheckoutService/internal/domain"
	"github.com/m04kA/PCS-CheckoutService/internal/integrations/stripeclient"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type updateCall struct {
	intentID string
	input    stripeclient.IntentInput
}

type fakeGateway struct {
	createCalls []stripeclient.IntentInput
	updateCalls []updateCall
	cancelCalls []string

	intent    *stripeclient.Intent
	createErr error
	updateErr error
	cancelErr error
}

func (g *fakeGateway) CreateIntent(_ context.Context, in stripeclient.IntentInput) (*stripeclient.Intent, error) {
	g.createCalls = append(g.createCalls, in)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.intent, nil
}

func (g *fakeGateway) UpdateIntent(_ context.Context, intentID string, in stripeclient.IntentInput) (*stripeclient.Intent, error) {
	g.updateCalls = append(g.updateCalls, updateCall{intentID: intentID, input: in})
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return g.intent, nil
}

func (g *fakeGateway) CancelStaleIntents(_ context.Context, email string, _ time.Duration) (int, error) {
	g.cancelCalls = append(g.cancelCalls, email)
	if g.cancelErr != nil {
		return 0, g.cancelErr
	}
	return 1, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newTestUseCase(gateway *fakeGateway) *UseCase {
	uc := NewUseCase(gateway, 30*time.Minute, nil, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Unix(1700000000, 0)}
	return uc
}

func inspectionItems(includeCPRSign bool) []Item {
	return ItemsFromOfferings(domain.SelectedOfferings(includeCPRSign))
}

func details() *domain.CustomerDetails {
	return &domain.CustomerDetails{
		FirstName:     "Jane",
		LastName:      "Citizen",
		Email:         "jane@example.com",
		Phone:         "0412345678",
		Address:       "12 Poolside Ave",
		Suburb:        "Glenelg",
		Postcode:      "5045",
		PreferredDate: "2026-09-15",
	}
}

func TestExecute_AmountMismatchRejectedBeforeRemoteCall(t *testing.T) {
	gateway := &fakeGateway{}
	uc := newTestUseCase(gateway)

	_, err := uc.Execute(context.Background(), &Request{
		Amount: 199.99,
		Items:  inspectionItems(false),
	})

	require.ErrorIs(t, err, ErrAmountMismatch)
	// Провайдер не должен быть затронут вообще
	assert.Empty(t, gateway.createCalls)
	assert.Empty(t, gateway.updateCalls)
	assert.Empty(t, gateway.cancelCalls)
}

func TestExecute_UnknownItemRejected(t *testing.T) {
	gateway := &fakeGateway{}
	uc := newTestUseCase(gateway)

	_, err := uc.Execute(context.Background(), &Request{
		Amount: 210,
		Items: []Item{
			{ID: "spa-inspection", Name: "Spa Inspection", Price: 210},
		},
	})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, gateway.createCalls)
}

func TestExecute_CreatesIntentWithMetadataSnapshot(t *testing.T) {
	gateway := &fakeGateway{
		intent: &stripeclient.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 21000},
	}
	uc := newTestUseCase(gateway)

	resp, err := uc.Execute(context.Background(), &Request{
		Amount:          210,
		Items:           inspectionItems(false),
		CustomerDetails: details(),
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", resp.PaymentIntentID)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)

	require.Len(t, gateway.createCalls, 1)
	in := gateway.createCalls[0]
	assert.Equal(t, int64(21000), in.AmountCents)
	assert.Equal(t, "Pool Safety Inspection", in.Description)
	assert.Equal(t, "jane@example.com", in.ReceiptEmail)
	assert.True(t, in.OffSession)
	assert.Equal(t, "jane@example.com", in.Metadata[domain.FieldEmail])
	assert.Equal(t, "false", in.Metadata["includeCprSign"])
	assert.Equal(t, `["Pool Safety Inspection"]`, in.Metadata["items"])

	// Уборка брошенных интентов клиента выполняется до создания нового
	require.Len(t, gateway.cancelCalls, 1)
	assert.Equal(t, "jane@example.com", gateway.cancelCalls[0])
}

func TestExecute_AddOnIncludedInTotalAndDescription(t *testing.T) {
	gateway := &fakeGateway{
		intent: &stripeclient.Intent{ID: "pi_2", ClientSecret: "pi_2_secret", Amount: 24000},
	}
	uc := newTestUseCase(gateway)

	_, err := uc.Execute(context.Background(), &Request{
		Amount:         240,
		Items:          inspectionItems(true),
		IncludeCPRSign: true,
	})

	require.NoError(t, err)
	require.Len(t, gateway.createCalls, 1)
	in := gateway.createCalls[0]
	assert.Equal(t, int64(24000), in.AmountCents)
	assert.Equal(t, "Pool Safety Inspection with CPR Sign", in.Description)
	assert.Equal(t, "true", in.Metadata["includeCprSign"])
}

func TestExecute_UpdatesExistingIntentInPlace(t *testing.T) {
	gateway := &fakeGateway{
		intent: &stripeclient.Intent{ID: "pi_live", ClientSecret: "pi_live_secret", Amount: 24000},
	}
	uc := newTestUseCase(gateway)

	resp, err := uc.Execute(context.Background(), &Request{
		Amount:          240,
		Items:           inspectionItems(true),
		IncludeCPRSign:  true,
		CustomerDetails: details(),
		PaymentIntentID: "pi_live",
	})

	require.NoError(t, err)
	// Идентификатор интента сохраняется, нового интента не появляется
	assert.Equal(t, "pi_live", resp.PaymentIntentID)
	require.Len(t, gateway.updateCalls, 1)
	assert.Equal(t, "pi_live", gateway.updateCalls[0].intentID)
	assert.Equal(t, int64(24000), gateway.updateCalls[0].input.AmountCents)
	assert.Empty(t, gateway.createCalls)
	assert.Empty(t, gateway.cancelCalls)
}

func TestExecute_ExpressCheckoutAlwaysCreatesFreshIntent(t *testing.T) {
	gateway := &fakeGateway{
		intent: &stripeclient.Intent{ID: "pi_express", ClientSecret: "pi_express_secret", Amount: 21000},
	}
	uc := newTestUseCase(gateway)

	resp, err := uc.Execute(context.Background(), &Request{
		Amount:            210,
		Items:             inspectionItems(false),
		PaymentIntentID:   "pi_old",
		IsExpressCheckout: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_express", resp.PaymentIntentID)
	require.Len(t, gateway.createCalls, 1)
	assert.False(t, gateway.createCalls[0].OffSession)
	assert.Empty(t, gateway.updateCalls)
}

func TestExecute_CleanupFailureDoesNotBlockCreation(t *testing.T) {
	gateway := &fakeGateway{
		intent:    &stripeclient.Intent{ID: "pi_3", ClientSecret: "pi_3_secret", Amount: 21000},
		cancelErr: fmt.Errorf("%w: listing failed", stripeclient.ErrRemoteUnavailable),
	}
	uc := newTestUseCase(gateway)

	resp, err := uc.Execute(context.Background(), &Request{
		Amount:          210,
		Items:           inspectionItems(false),
		CustomerDetails: details(),
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_3", resp.PaymentIntentID)
	require.Len(t, gateway.createCalls, 1)
}

func TestExecute_RemoteUnavailableSurfacedAsRetryable(t *testing.T) {
	gateway := &fakeGateway{
		createErr: fmt.Errorf("%w: connection refused", stripeclient.ErrRemoteUnavailable),
	}
	uc := newTestUseCase(gateway)

	_, err := uc.Execute(context.Background(), &Request{
		Amount: 210,
		Items:  inspectionItems(false),
	})

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestExecute_InvalidMetadataSurfaced(t *testing.T) {
	gateway := &fakeGateway{
		updateErr: fmt.Errorf("%w: value too long", stripeclient.ErrInvalidMetadata),
	}
	uc := newTestUseCase(gateway)

	_, err := uc.Execute(context.Background(), &Request{
		Amount:          210,
		Items:           inspectionItems(false),
		PaymentIntentID: "pi_live",
	})

	assert.ErrorIs(t, err, ErrInvalidMetadata)
}
