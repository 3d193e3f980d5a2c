package create_payment_intent

import (
	"fmt"
	"math"

	"github.com/m04kA/PCS-CheckoutService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Сумма сверяется с каталогом до любого обращения к провайдеру:
// расхождение - жёсткая остановка, интент не создаётся.
func validateRequest(req *Request) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items are required", ErrInvalidInput)
	}

	ids := make([]string, 0, len(req.Items))
	hasInspection := false
	hasCPRSign := false
	for _, item := range req.Items {
		if _, ok := domain.Catalog[item.ID]; !ok {
			return fmt.Errorf("%w: unknown item id %q", ErrInvalidInput, item.ID)
		}
		ids = append(ids, item.ID)

		switch item.ID {
		case domain.OfferingPoolInspection:
			hasInspection = true
		case domain.OfferingCPRSign:
			hasCPRSign = true
		}
	}

	if !hasInspection {
		return fmt.Errorf("%w: order must include the inspection", ErrInvalidInput)
	}
	if hasCPRSign != req.IncludeCPRSign {
		return fmt.Errorf("%w: includeCprSign flag does not match items", ErrInvalidInput)
	}

	expected, err := domain.ComputeTotal(ids)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if math.Abs(req.Amount-expected) > domain.AmountTolerance {
		return fmt.Errorf("%w: provided %.2f, expected %.2f", ErrAmountMismatch, req.Amount, expected)
	}

	return nil
}
