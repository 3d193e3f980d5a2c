package create_payment_intent

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment_intent: invalid input data")

	// ErrAmountMismatch возвращается, когда присланная сумма не совпадает
	// с вычисленной по каталогу. Жёсткая остановка до обращения к провайдеру.
	ErrAmountMismatch = errors.New("create_payment_intent: amount mismatch detected")

	// ErrRemoteUnavailable возвращается при недоступности платёжного провайдера
	ErrRemoteUnavailable = errors.New("create_payment_intent: payment provider unavailable")

	// ErrInvalidMetadata возвращается, когда данные клиента нарушают
	// ограничения провайдера (например, лимит длины metadata)
	ErrInvalidMetadata = errors.New("create_payment_intent: invalid metadata")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment_intent: internal error")
)
