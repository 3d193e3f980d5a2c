package notifications

import "errors"

var (
	// ErrInvalidInput возвращается при неполном сообщении контактной формы
	ErrInvalidInput = errors.New("notifications: invalid input data")

	// ErrSendFailed возвращается, когда хотя бы одно письмо не отправлено
	ErrSendFailed = errors.New("notifications: failed to send email")
)
