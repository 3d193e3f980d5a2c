package create_payment_intent

import (
	"errors"
	"net/http"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
	createPaymentIntent "github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidOrder       = "invalid order data"
	msgAmountMismatch     = "order amount does not match selected services"
	msgPaymentUnavailable = "payment provider is temporarily unavailable, please try again"
)

type Handler struct {
	useCase CreatePaymentIntentUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentIntentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payment-intents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment-intents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createPaymentIntent.ErrAmountMismatch):
			h.logger.Warn("POST /payment-intents - Amount mismatch: amount=%.2f", req.Amount)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, createPaymentIntent.ErrInvalidInput),
			errors.Is(err, createPaymentIntent.ErrInvalidMetadata):
			h.logger.Warn("POST /payment-intents - Invalid order: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOrder)

		case errors.Is(err, createPaymentIntent.ErrRemoteUnavailable):
			h.logger.Error("POST /payment-intents - Payment provider unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /payment-intents - Failed to set up payment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment-intents - Intent ready: id=%s", result.PaymentIntentID)
	handlers.RespondJSON(w, http.StatusOK, CreatePaymentIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.PaymentIntentID,
	})
}
