package create_payment_intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createPaymentIntent "github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req  *createPaymentIntent.Request
	resp *createPaymentIntent.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createPaymentIntent.Request) (*createPaymentIntent.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment-intents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &createPaymentIntent.Response{
		ClientSecret:    "pi_1_secret",
		PaymentIntentID: "pi_1",
	}}
	h := NewHandler(uc, nopLogger{})

	rec := doRequest(t, h, `{
		"amount": 240,
		"items": [
			{"id": "pool-inspection", "name": "Pool Safety Inspection", "price": 210},
			{"id": "cpr-sign", "name": "CPR Sign", "price": 30}
		],
		"includeCprSign": true,
		"customerDetails": {"firstName": "Jane", "email": "jane@example.com"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CreatePaymentIntentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pi_1", resp.PaymentIntentID)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)

	require.NotNil(t, uc.req)
	assert.Equal(t, 240.0, uc.req.Amount)
	assert.Len(t, uc.req.Items, 2)
	assert.True(t, uc.req.IncludeCPRSign)
	require.NotNil(t, uc.req.CustomerDetails)
	assert.Equal(t, "jane@example.com", uc.req.CustomerDetails.Email)
}

func TestHandle_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := doRequest(t, h, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"amount mismatch", createPaymentIntent.ErrAmountMismatch, http.StatusBadRequest},
		{"invalid input", createPaymentIntent.ErrInvalidInput, http.StatusBadRequest},
		{"invalid metadata", createPaymentIntent.ErrInvalidMetadata, http.StatusBadRequest},
		{"remote unavailable", createPaymentIntent.ErrRemoteUnavailable, http.StatusBadGateway},
		{"internal", createPaymentIntent.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := doRequest(t, h, `{"amount": 210, "items": [{"id": "pool-inspection", "price": 210}]}`)

			assert.Equal(t, tt.wantCode, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}
