package create_checkout_session

import (
	"net/http"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
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

// Handle POST /api/v1/checkout/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Create(r.Context())
	if err != nil {
		h.logger.Error("POST /checkout/sessions - Failed to create session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /checkout/sessions - Session created: session_id=%s", session.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
