package get_checkout_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout"
)

const msgNotFound = "checkout session not found"

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

// Handle GET /api/v1/checkout/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, checkout.ErrSessionNotFound) {
			h.logger.Warn("GET /checkout/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /checkout/sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
