package advance_checkout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout"
	createPaymentIntent "github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

const (
	msgNotFound            = "checkout session not found"
	msgFormIncomplete      = "please fill in all required fields"
	msgInvalidTransition   = "action is not allowed on the current step"
	msgPaymentNotSucceeded = "payment has not been completed"
	msgPaymentUnavailable  = "payment provider is temporarily unavailable, please try again"
)

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

// HandleAdvance POST /api/v1/checkout/sessions/{sessionId}/advance
func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Advance(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("POST /checkout/sessions/{id}/advance - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkout.ErrFormIncomplete):
			h.logger.Warn("POST /checkout/sessions/{id}/advance - Form incomplete: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgFormIncomplete)

		case errors.Is(err, checkout.ErrPaymentNotSucceeded):
			h.logger.Warn("POST /checkout/sessions/{id}/advance - Payment not succeeded: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgPaymentNotSucceeded)

		case errors.Is(err, checkout.ErrInvalidTransition):
			h.logger.Warn("POST /checkout/sessions/{id}/advance - Invalid transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, createPaymentIntent.ErrRemoteUnavailable):
			h.logger.Error("POST /checkout/sessions/{id}/advance - Payment provider unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /checkout/sessions/{id}/advance - Failed to advance: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/sessions/{id}/advance - Session advanced: session_id=%s, step=%s",
		sessionID, session.Step)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleBack POST /api/v1/checkout/sessions/{sessionId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Back(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("POST /checkout/sessions/{id}/back - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkout.ErrInvalidTransition):
			h.logger.Warn("POST /checkout/sessions/{id}/back - Invalid transition: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /checkout/sessions/{id}/back - Failed to go back: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/sessions/{id}/back - Session returned: session_id=%s, step=%s",
		sessionID, session.Step)
	handlers.RespondJSON(w, http.StatusOK, session)
}
