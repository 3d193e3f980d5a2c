package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/PCS-CheckoutService/internal/domain"
	"github.com/m04kA/PCS-CheckoutService/internal/service/checkout/models"
	"github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

// Статусы оплаты, которые платёжная форма сообщает по завершении
const (
	PaymentResultSucceeded  = "succeeded"
	PaymentResultProcessing = "processing"
	PaymentResultFailed     = "failed"
)

// Service оркестратор сессий оформления заказа.
// Держит сессии в памяти: сессия живет только на время оформления,
// единственная долговременная запись о бронировании - metadata платёжного
// интента у провайдера.
type Service struct {
	intents      PaymentIntents
	timeProvider TimeProvider
	logger       Logger

	mu       sync.RWMutex
	sessions map[string]*domain.CheckoutSession
}

// NewService создает новый экземпляр оркестратора оформления
func NewService(intents PaymentIntents, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		intents:      intents,
		timeProvider: timeProvider,
		logger:       logger,
		sessions:     make(map[string]*domain.CheckoutSession),
	}
}

// Create создает новую сессию оформления на шаге заполнения формы
func (s *Service) Create(ctx context.Context) (*models.SessionResponse, error) {
	total, err := domain.ComputeTotal(domain.OfferingIDs(domain.SelectedOfferings(false)))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - compute total: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	session := &domain.CheckoutSession{
		ID:           uuid.NewString(),
		Step:         domain.StepDetails,
		FieldErrors:  make(map[string]string),
		Total:        total,
		PaymentState: domain.PaymentStateNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Create: checkout session id=%s started, total=%.2f", session.ID, total)
	return models.FromDomainSession(session), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(_ context.Context, sessionID string) (*models.SessionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return models.FromDomainSession(session), nil
}

// UpdateDetails применяет значения полей формы к сессии.
// Некорректные значения не отклоняются, а сохраняются вместе с ошибками
// по полям - форма показывает их inline. Если у сессии уже есть живой
// интент (возврат с оплаты к правке формы), его metadata обновляется
// попутно и без блокировки правки.
func (s *Service) UpdateDetails(ctx context.Context, sessionID string, fields map[string]string) (*models.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Step != domain.StepDetails {
		return nil, fmt.Errorf("%w: details are editable only on step %q, current step %q",
			ErrInvalidTransition, domain.StepDetails, session.Step)
	}

	for name, value := range fields {
		if err := session.Details.SetField(name, value); err != nil {
			return nil, fmt.Errorf("%w: unknown form field %q", ErrInvalidInput, name)
		}
	}
	for name := range fields {
		if msg := session.Details.ValidateField(name); msg != "" {
			session.FieldErrors[name] = msg
		} else {
			delete(session.FieldErrors, name)
		}
	}
	session.UpdatedAt = s.timeProvider.Now()

	if session.HasLiveIntent() && session.Details.IsComplete() {
		if err := s.refreshIntent(ctx, session); err != nil {
			// Сессия остается источником истины, metadata догонит при переходе к оплате
			s.logger.Warn("UpdateDetails: intent metadata refresh failed for session=%s: %v", sessionID, err)
		}
	}

	s.logger.Info("UpdateDetails: session=%s updated %d fields, %d field errors",
		sessionID, len(fields), len(session.FieldErrors))
	return models.FromDomainSession(session), nil
}

// SetAddOn включает или выключает дополнительную услугу (табличку CPR).
// Если у сессии есть живой интент, его сумма и metadata обновляются на месте
// с сохранением id интента. При отказе обновления выбор откатывается, чтобы
// локальная сумма не разошлась с суммой у провайдера.
func (s *Service) SetAddOn(ctx context.Context, sessionID string, include bool) (*models.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Step != domain.StepDetails && session.Step != domain.StepReview {
		return nil, fmt.Errorf("%w: order is not editable on step %q", ErrInvalidTransition, session.Step)
	}

	prevInclude, prevTotal := session.IncludeCPRSign, session.Total

	total, err := domain.ComputeTotal(domain.OfferingIDs(domain.SelectedOfferings(include)))
	if err != nil {
		return nil, fmt.Errorf("%w: SetAddOn - compute total: %v", ErrInternal, err)
	}
	session.IncludeCPRSign = include
	session.Total = total

	if session.HasLiveIntent() {
		if err := s.refreshIntent(ctx, session); err != nil {
			session.IncludeCPRSign = prevInclude
			session.Total = prevTotal
			s.logger.Error("SetAddOn: intent update failed for session=%s: %v", sessionID, err)
			return nil, err
		}
	}
	session.UpdatedAt = s.timeProvider.Now()

	s.logger.Info("SetAddOn: session=%s, cprSign=%t, total=%.2f", sessionID, include, total)
	return models.FromDomainSession(session), nil
}

// Advance переводит сессию на следующий шаг оформления.
// Каждый переход охраняется: details->review требует полной формы,
// review->payment создает или обновляет платёжный интент,
// payment->confirmation требует подтверждённой оплаты.
func (s *Service) Advance(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	switch session.Step {
	case domain.StepDetails:
		if !session.Details.IsComplete() {
			session.FieldErrors = session.Details.Validate()
			s.logger.Warn("Advance: session=%s form incomplete, %d field errors",
				sessionID, len(session.FieldErrors))
			return nil, ErrFormIncomplete
		}
		session.FieldErrors = make(map[string]string)
		session.Step = domain.StepReview

	case domain.StepReview:
		if err := s.refreshIntent(ctx, session); err != nil {
			// Остаемся на review, клиент может повторить попытку
			s.logger.Error("Advance: payment setup failed for session=%s: %v", sessionID, err)
			return nil, err
		}
		session.Step = domain.StepPayment

	case domain.StepPayment:
		if session.PaymentState != domain.PaymentStateSucceeded {
			return nil, ErrPaymentNotSucceeded
		}
		session.Step = domain.StepConfirmation

	default:
		return nil, fmt.Errorf("%w: cannot advance from step %q", ErrInvalidTransition, session.Step)
	}

	session.UpdatedAt = s.timeProvider.Now()
	s.logger.Info("Advance: session=%s moved to step %q", sessionID, session.Step)
	return models.FromDomainSession(session), nil
}

// Back возвращает сессию к правке формы с review или payment.
// Интент при этом сохраняется: следующий переход к оплате обновит его
// на месте вместо создания нового.
func (s *Service) Back(_ context.Context, sessionID string) (*models.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !session.CanEditOrder() {
		return nil, fmt.Errorf("%w: cannot go back from step %q", ErrInvalidTransition, session.Step)
	}

	session.Step = domain.StepDetails
	session.UpdatedAt = s.timeProvider.Now()

	s.logger.Info("Back: session=%s returned to step %q", sessionID, session.Step)
	return models.FromDomainSession(session), nil
}

// ReportPaymentResult принимает терминальный статус оплаты от платёжной формы.
// succeeded завершает оформление, processing оставляет сессию в ожидании
// подтверждения, failed оставляет клиента на шаге оплаты для повторной попытки.
func (s *Service) ReportPaymentResult(_ context.Context, sessionID, status string) (*models.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Step != domain.StepPayment {
		return nil, fmt.Errorf("%w: payment result is accepted only on step %q, current step %q",
			ErrInvalidTransition, domain.StepPayment, session.Step)
	}

	switch status {
	case PaymentResultSucceeded:
		session.PaymentState = domain.PaymentStateSucceeded
		session.Step = domain.StepConfirmation
	case PaymentResultProcessing:
		session.PaymentState = domain.PaymentStateConfirming
	case PaymentResultFailed:
		session.PaymentState = domain.PaymentStateFailed
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}

	session.UpdatedAt = s.timeProvider.Now()
	s.logger.Info("ReportPaymentResult: session=%s, status=%s, step=%q", sessionID, status, session.Step)
	return models.FromDomainSession(session), nil
}

// refreshIntent создает платёжный интент сессии или обновляет существующий.
// Сумма и позиции всегда пересчитываются из текущего состояния сессии,
// id живого интента сохраняется.
func (s *Service) refreshIntent(ctx context.Context, session *domain.CheckoutSession) error {
	intentID := ""
	if session.HasLiveIntent() {
		intentID = session.PaymentIntentID
	}

	details := session.Details
	resp, err := s.intents.Execute(ctx, &create_payment_intent.Request{
		Amount:          session.Total,
		Items:           create_payment_intent.ItemsFromOfferings(domain.SelectedOfferings(session.IncludeCPRSign)),
		IncludeCPRSign:  session.IncludeCPRSign,
		CustomerDetails: &details,
		PaymentIntentID: intentID,
	})
	if err != nil {
		return err
	}

	session.PaymentIntentID = resp.PaymentIntentID
	session.ClientSecret = resp.ClientSecret
	if session.PaymentState == domain.PaymentStateNone || session.PaymentState == domain.PaymentStateFailed {
		session.PaymentState = domain.PaymentStatePending
	}
	return nil
}
