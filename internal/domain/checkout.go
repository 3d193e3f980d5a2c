package domain

import "time"

// CheckoutStep шаг пользователя в процессе оформления заказа
type CheckoutStep string

const (
	StepDetails      CheckoutStep = "details"
	StepReview       CheckoutStep = "review"
	StepPayment      CheckoutStep = "payment"
	StepConfirmation CheckoutStep = "confirmation"
)

// PaymentState локальное представление статуса удалённого платёжного интента
type PaymentState string

const (
	PaymentStateNone       PaymentState = "none"
	PaymentStatePending    PaymentState = "pending"
	PaymentStateConfirming PaymentState = "confirming"
	PaymentStateSucceeded  PaymentState = "succeeded"
	PaymentStateFailed     PaymentState = "failed"
)

// CheckoutSession состояние одной сессии оформления заказа.
// Сессия владеет заказом и данными клиента; сам платёжный интент принадлежит
// платёжному провайдеру, здесь хранится только слабая ссылка (id + secret).
type CheckoutSession struct {
	ID   string
	Step CheckoutStep

	Details     CustomerDetails
	FieldErrors map[string]string

	IncludeCPRSign bool
	Total          float64

	PaymentIntentID string
	ClientSecret    string
	PaymentState    PaymentState

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLiveIntent true, если у сессии есть незавершённый платёжный интент
func (s *CheckoutSession) HasLiveIntent() bool {
	return s.PaymentIntentID != "" &&
		s.PaymentState != PaymentStateSucceeded &&
		s.PaymentState != PaymentStateFailed
}

// CanEditOrder true, если из текущего шага разрешён возврат к правке заказа
func (s *CheckoutSession) CanEditOrder() bool {
	return s.Step == StepReview || s.Step == StepPayment
}

// IsFinished true, если оформление завершено
func (s *CheckoutSession) IsFinished() bool {
	return s.Step == StepConfirmation
}
