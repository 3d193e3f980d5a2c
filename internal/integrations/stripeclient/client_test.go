package stripeclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v74"
)

func TestValidateMetadata(t *testing.T) {
	assert.NoError(t, validateMetadata(map[string]string{
		"email": "a@b.com",
		"notes": strings.Repeat("x", 500),
	}))

	err := validateMetadata(map[string]string{
		"notes": strings.Repeat("x", 501),
	})
	assert.ErrorIs(t, err, ErrInvalidMetadata)
}

func TestFromStripeIntent(t *testing.T) {
	intent := fromStripeIntent(&stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		Amount:       24000,
	})

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, stripe.PaymentIntentStatusRequiresPaymentMethod, intent.Status)
	assert.Equal(t, int64(24000), intent.Amount)
}
