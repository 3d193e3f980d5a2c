package checkout

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия оформления не существует
	ErrSessionNotFound = errors.New("checkout: session not found")

	// ErrFormIncomplete возвращается при попытке перейти к подтверждению
	// заказа с незаполненной формой
	ErrFormIncomplete = errors.New("checkout: booking form is incomplete")

	// ErrInvalidTransition возвращается при недопустимом переходе между шагами
	ErrInvalidTransition = errors.New("checkout: invalid step transition")

	// ErrPaymentNotSucceeded возвращается при попытке завершить оформление
	// без подтверждённой оплаты
	ErrPaymentNotSucceeded = errors.New("checkout: payment has not succeeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("checkout: internal error")
)
