package stripeclient

import "errors"

var (
	// ErrRemoteUnavailable возвращается, когда платёжный провайдер недоступен
	// (сеть, таймаут, 5xx). Ошибка retryable - пользователь может повторить.
	ErrRemoteUnavailable = errors.New("stripeclient: payment provider unavailable")

	// ErrInvalidMetadata возвращается, когда metadata нарушает ограничения провайдера
	ErrInvalidMetadata = errors.New("stripeclient: metadata violates provider constraints")

	// ErrInvalidRequest возвращается при отклонённом провайдером запросе
	ErrInvalidRequest = errors.New("stripeclient: invalid request")

	// ErrSignatureVerification возвращается при невалидной подписи webhook-события
	ErrSignatureVerification = errors.New("stripeclient: webhook signature verification failed")
)
