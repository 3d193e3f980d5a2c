package create_payment_intent

import (
	"github.com/m04kA/PCS-CheckoutService/internal/domain"
	createPaymentIntent "github.com/m04kA/PCS-CheckoutService/internal/usecase/create_payment_intent"
)

// ItemPayload позиция заказа в запросе
type ItemPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// CustomerDetailsPayload данные клиента в запросе.
// Присутствуют только в обычном потоке, express-поток их не передает.
type CustomerDetailsPayload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Suburb        string `json:"suburb"`
	Postcode      string `json:"postcode"`
	PreferredDate string `json:"preferredDate"`
	Notes         string `json:"notes,omitempty"`
}

// CreatePaymentIntentRequest запрос на создание или обновление платёжного интента
type CreatePaymentIntentRequest struct {
	Amount            float64                 `json:"amount"`
	Items             []ItemPayload           `json:"items"`
	IncludeCPRSign    bool                    `json:"includeCprSign"`
	CustomerDetails   *CustomerDetailsPayload `json:"customerDetails,omitempty"`
	PaymentIntentID   string                  `json:"paymentIntentId,omitempty"`
	IsExpressCheckout bool                    `json:"isExpressCheckout,omitempty"`
}

// CreatePaymentIntentResponse ответ с capability для платёжной формы
type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePaymentIntentRequest) ToUseCaseRequest() *createPaymentIntent.Request {
	items := make([]createPaymentIntent.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createPaymentIntent.Item{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
		})
	}

	var details *domain.CustomerDetails
	if r.CustomerDetails != nil {
		details = &domain.CustomerDetails{
			FirstName:     r.CustomerDetails.FirstName,
			LastName:      r.CustomerDetails.LastName,
			Email:         r.CustomerDetails.Email,
			Phone:         r.CustomerDetails.Phone,
			Address:       r.CustomerDetails.Address,
			Suburb:        r.CustomerDetails.Suburb,
			Postcode:      r.CustomerDetails.Postcode,
			PreferredDate: r.CustomerDetails.PreferredDate,
			Notes:         r.CustomerDetails.Notes,
		}
	}

	return &createPaymentIntent.Request{
		Amount:            r.Amount,
		Items:             items,
		IncludeCPRSign:    r.IncludeCPRSign,
		CustomerDetails:   details,
		PaymentIntentID:   r.PaymentIntentID,
		IsExpressCheckout: r.IsExpressCheckout,
	}
}
