package create_payment_intent

import (
	"github.com/m04kA/PCS-CheckoutService/internal/domain"
)

// Item позиция заказа в запросе
type Item struct {
	ID          string
	Name        string
	Price       float64
	Description string
}

// Request модель запроса на создание или обновление платёжного интента
type Request struct {
	Amount          float64
	Items           []Item
	IncludeCPRSign  bool
	CustomerDetails *domain.CustomerDetails

	// PaymentIntentID идентификатор уже существующего интента сессии.
	// Если задан и поток не express, интент обновляется на месте:
	// одна сессия оформления - максимум один живой интент.
	PaymentIntentID string

	// IsExpressCheckout express-поток всегда создает свежий интент,
	// так как личность плательщика на этот момент ещё не известна
	IsExpressCheckout bool
}

// Response модель ответа с capability для платёжной формы
type Response struct {
	ClientSecret    string
	PaymentIntentID string
}

// ItemsFromOfferings конвертирует позиции каталога в позиции запроса
func ItemsFromOfferings(offerings []domain.ServiceOffering) []Item {
	items := make([]Item, 0, len(offerings))
	for _, o := range offerings {
		items = append(items, Item{
			ID:          o.ID,
			Name:        o.Name,
			Price:       o.UnitPrice,
			Description: o.Description,
		})
	}
	return items
}
