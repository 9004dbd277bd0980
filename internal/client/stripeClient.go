package client

import (
	"context"

	"prepaid-card-backend/internal/config"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
)

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

type stripeClientImpl struct {
	sessions *session.Client
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		sessions: &session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: stripeCfg.SecretKey,
		},
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return c.sessions.New(params)
}

func (c *stripeClientImpl) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	return c.sessions.Get(sessionID, params)
}
