package payments

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var ErrNotConfigured = errors.New("payment processor not configured")

type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
}

// IntentCreator is the narrow surface the HTTP layer depends on; Stripe is
// an external collaborator behind it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (Intent, error)
}

type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	if secretKey == "" {
		return &StripeClient{}
	}

	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeClient{api: api}
}

func (s *StripeClient) CreateIntent(ctx context.Context, amountCents int64) (Intent, error) {
	if s.api == nil {
		return Intent{}, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)

	if err != nil {
		return Intent{}, err
	}

	return Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
	}, nil
}
