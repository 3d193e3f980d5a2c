package set_addon

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout"
	createPaymentIntent "github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "checkout session not found"
	msgNotEditable        = "order is not editable on the current step"
	msgPaymentUnavailable = "payment provider is temporarily unavailable, please try again"
)

// SetAddOnRequest включение или выключение дополнительной услуги
type SetAddOnRequest struct {
	IncludeCPRSign bool `json:"includeCprSign"`
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

// Handle PUT /api/v1/checkout/sessions/{sessionId}/add-on
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SetAddOnRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /checkout/sessions/{id}/add-on - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SetAddOn(r.Context(), sessionID, req.IncludeCPRSign)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("PUT /checkout/sessions/{id}/add-on - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkout.ErrInvalidTransition):
			h.logger.Warn("PUT /checkout/sessions/{id}/add-on - Not editable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		case errors.Is(err, createPaymentIntent.ErrRemoteUnavailable):
			h.logger.Error("PUT /checkout/sessions/{id}/add-on - Payment provider unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		default:
			h.logger.Error("PUT /checkout/sessions/{id}/add-on - Failed to update order: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /checkout/sessions/{id}/add-on - Order updated: session_id=%s, total=%.2f",
		sessionID, session.Total)
	handlers.RespondJSON(w, http.StatusOK, session)
}
