package send_contact_email

import (
	"errors"
	"net/http"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications"
	"github.com/m04kA/PCS-CheckoutService/internal/service/notifications/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "name, email, phone and message are required"
	msgSendFailed         = "failed to send message, please try again later"
	msgSent               = "Message sent successfully"
)

// ContactRequest запрос контактной формы
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactResponse ответ контактной формы
type ContactResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.SendContactMessage(r.Context(), &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /contact - Missing fields: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, notifications.ErrSendFailed):
			h.logger.Error("POST /contact - Send failed: email=%s, error=%v", req.Email, err)
			handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)

		default:
			h.logger.Error("POST /contact - Failed to forward message: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contact - Message forwarded: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, ContactResponse{Message: msgSent})
}
