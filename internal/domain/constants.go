package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Payment constants
const (
	// Currency валюта всех платежей
	Currency = "aud"

	// AmountTolerance допуск при сравнении сумм (погрешность float)
	AmountTolerance = 0.01

	// MaxMetadataValueLength лимит провайдера на длину значения metadata
	MaxMetadataValueLength = 500
)

// Business validation constants
const (
	// MaxNotesLength лимит на заметки формы: попадают в metadata интента,
	// поэтому совпадает с лимитом провайдера на значение metadata
	MaxNotesLength = 500

	// MaxMessageLength лимит на сообщение контактной формы
	MaxMessageLength = 2000
)
