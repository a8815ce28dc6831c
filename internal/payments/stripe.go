// Package payments talks to the card payment provider.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentCreator opens a payment intent for amount minor currency units and
// returns the secret the browser uses to complete it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	return newStripeClient(secretKey, nil)
}

// newStripeClient uses backends instead of the live API when non-nil.
func newStripeClient(secretKey string, backends *stripe.Backends) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeClient{api: api}
}

func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
