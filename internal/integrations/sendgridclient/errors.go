package sendgridclient

import "errors"

var (
	// ErrSendFailed возвращается, когда провайдер не принял письмо
	ErrSendFailed = errors.New("sendgridclient: failed to send email")

	// ErrInvalidMessage возвращается при некорректном сообщении (нет получателя/темы)
	ErrInvalidMessage = errors.New("sendgridclient: invalid message")
)
