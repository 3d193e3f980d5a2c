package update_customer_details

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
	msgUnknownField       = "unknown form field"
	msgNotEditable        = "form is not editable on the current step"
)

// UpdateDetailsRequest частичное обновление полей формы.
// Ключи совпадают с именами полей формы бронирования.
type UpdateDetailsRequest struct {
	Fields map[string]string `json:"fields"`
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

// Handle PATCH /api/v1/checkout/sessions/{sessionId}/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /checkout/sessions/{id}/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.UpdateDetails(r.Context(), sessionID, req.Fields)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			h.logger.Warn("PATCH /checkout/sessions/{id}/details - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkout.ErrInvalidInput):
			h.logger.Warn("PATCH /checkout/sessions/{id}/details - Unknown field: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgUnknownField)

		case errors.Is(err, checkout.ErrInvalidTransition):
			h.logger.Warn("PATCH /checkout/sessions/{id}/details - Not editable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		default:
			h.logger.Error("PATCH /checkout/sessions/{id}/details - Failed to update: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
