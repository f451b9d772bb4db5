package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Bridge creates a payment intent with the external provider and returns
// the client secret the frontend needs to confirm the payment.
type Bridge interface {
	CreateIntent(ctx context.Context, amountMinor int64) (clientSecret string, err error)
}

type StripeBridge struct{}

func NewStripeBridge(apiKey string) *StripeBridge {
	stripe.Key = apiKey
	return &StripeBridge{}
}

func (b *StripeBridge) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
