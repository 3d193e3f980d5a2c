package report_payment_result

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "checkout session not found"
	msgInvalidStatus      = "unknown payment status"
	msgInvalidTransition  = "payment result is not accepted on the current step"
)

// PaymentResultRequest терминальный статус оплаты от платёжной формы
type PaymentResultRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service CheckoutService
	logger  Logger
}

func NewHandler(service CheckoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout/sessions/{sessionId}/payment-result
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req PaymentResultRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout/sessions/{id}/payment-result - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.ReportPaymentResult(r.Context(), sessionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("POST /checkout/sessions/{id}/payment-result - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkout.ErrInvalidInput):
			h.logger.Warn("POST /checkout/sessions/{id}/payment-result - Unknown status: session_id=%s, status=%s",
				sessionID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, checkout.ErrInvalidTransition):
			h.logger.Warn("POST /checkout/sessions/{id}/payment-result - Invalid transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /checkout/sessions/{id}/payment-result - Failed to apply result: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/sessions/{id}/payment-result - Result applied: session_id=%s, step=%s",
		sessionID, session.Step)
	handlers.RespondJSON(w, http.StatusOK, session)
}
