package models

// ContactMessage сообщение контактной формы
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// BookingDetails сводка бронирования, восстановленная из metadata-снимка
// платёжного интента - единственной долговременной записи о заказе
type BookingDetails struct {
	PaymentIntentID string
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	Address         string
	Suburb          string
	Postcode        string
	PreferredDate   string
	Notes           string
	IncludeCPRSign  bool
	AmountPaid      float64 // AUD
}

// RefundDetails данные возврата платежа
type RefundDetails struct {
	PaymentIntentID string
	Email           string
	Amount          float64 // AUD
}
