package models

import (
	"github.com/m04kA/PCS-CheckoutService/internal/domain"
)

// CustomerDetailsPayload данные клиента в ответе сессии
type CustomerDetailsPayload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Suburb        string `json:"suburb"`
	Postcode      string `json:"postcode"`
	PreferredDate string `json:"preferredDate"`
	Notes         string `json:"notes"`
}

// SessionResponse состояние сессии оформления для клиента
type SessionResponse struct {
	SessionID       string                 `json:"sessionId"`
	Step            string                 `json:"step"`
	CustomerDetails CustomerDetailsPayload `json:"customerDetails"`
	FieldErrors     map[string]string      `json:"fieldErrors,omitempty"`
	IncludeCPRSign  bool                   `json:"includeCprSign"`
	Total           float64                `json:"total"`
	PaymentIntentID string                 `json:"paymentIntentId,omitempty"`
	ClientSecret    string                 `json:"clientSecret,omitempty"`
	PaymentState    string                 `json:"paymentState"`
}

// FromDomainSession конвертирует domain сессию в response модель
func FromDomainSession(s *domain.CheckoutSession) *SessionResponse {
	return &SessionResponse{
		SessionID: s.ID,
		Step:      string(s.Step),
		CustomerDetails: CustomerDetailsPayload{
			FirstName:     s.Details.FirstName,
			LastName:      s.Details.LastName,
			Email:         s.Details.Email,
			Phone:         s.Details.Phone,
			Address:       s.Details.Address,
			Suburb:        s.Details.Suburb,
			Postcode:      s.Details.Postcode,
			PreferredDate: s.Details.PreferredDate,
			Notes:         s.Details.Notes,
		},
		FieldErrors:     s.FieldErrors,
		IncludeCPRSign:  s.IncludeCPRSign,
		Total:           s.Total,
		PaymentIntentID: s.PaymentIntentID,
		ClientSecret:    s.ClientSecret,
		PaymentState:    string(s.PaymentState),
	}
}
