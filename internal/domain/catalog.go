package domain

import (
	"errors"
	"fmt"
)

// Идентификаторы позиций фиксированного каталога услуг
const (
	OfferingPoolInspection = "pool-inspection"
	OfferingCPRSign        = "cpr-sign"
)

// ServiceOffering позиция каталога услуг
type ServiceOffering struct {
	ID          string
	Name        string
	UnitPrice   float64 // AUD
	Description string
}

// Catalog фиксированный каталог: обязательная инспекция и опциональная табличка CPR.
// Набор задаётся на этапе сборки и не расширяется пользователем.
var Catalog = map[string]ServiceOffering{
	OfferingPoolInspection: {
		ID:          OfferingPoolInspection,
		Name:        "Pool Safety Inspection",
		UnitPrice:   210,
		Description: "Comprehensive pool safety inspection to ensure compliance with current regulations.",
	},
	OfferingCPRSign: {
		ID:          OfferingCPRSign,
		Name:        "CPR Sign",
		UnitPrice:   30,
		Description: "CPR Sign for pool safety",
	},
}

// ErrUnknownOffering возвращается при ссылке на позицию вне каталога
var ErrUnknownOffering = errors.New("domain: unknown offering id")

// ComputeTotal вычисляет сумму заказа по выбранным позициям каталога.
// Чистая функция; неизвестный идентификатор - ошибка входных данных, а не ноль.
func ComputeTotal(selected []string) (float64, error) {
	var total float64
	for _, id := range selected {
		offering, ok := Catalog[id]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownOffering, id)
		}
		total += offering.UnitPrice
	}
	return total, nil
}

// SelectedOfferings возвращает позиции текущего заказа:
// инспекция включена всегда, табличка CPR - по флагу.
func SelectedOfferings(includeCPRSign bool) []ServiceOffering {
	offerings := []ServiceOffering{Catalog[OfferingPoolInspection]}
	if includeCPRSign {
		offerings = append(offerings, Catalog[OfferingCPRSign])
	}
	return offerings
}

// OfferingIDs извлекает идентификаторы из списка позиций
func OfferingIDs(offerings []ServiceOffering) []string {
	ids := make([]string, 0, len(offerings))
	for _, o := range offerings {
		ids = append(ids, o.ID)
	}
	return ids
}
