package stripe_webhook

import (
	"io"
	"net/http"

	"github.com/m04kA/PCS-CheckoutService/internal/api/handlers"
)

const (
	msgUnreadableBody      = "unable to read request body"
	msgInvalidSignature    = "invalid webhook signature"
	signatureHeader        = "Stripe-Signature"
	maxWebhookPayloadBytes = 1 << 16
)

// AckResponse подтверждение приема события
type AckResponse struct {
	Received bool `json:"received"`
}

type Handler struct {
	verifier EventVerifier
	useCase  ProcessWebhookUseCase
	logger   Logger
}

func NewHandler(verifier EventVerifier, useCase ProcessWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Событие с неверной подписью отклоняется без обработки. После успешной
// проверки подписи ответ всегда 200, даже если внутренняя обработка
// частично не удалась, иначе провайдер устроит шторм передоставок.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}
	defer r.Body.Close()

	event, err := h.verifier.VerifyEvent(payload, r.Header.Get(signatureHeader))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Signature verification failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	h.useCase.Execute(r.Context(), event)

	handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true})
}
