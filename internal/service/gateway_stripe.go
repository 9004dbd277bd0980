package service

import (
	"context"
	"fmt"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/client"
	"prepaid-card-backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
)

const confirmationMessageLimit = 120

type stripeGateway struct {
	stripeClient client.StripeClient
	currency     string
}

func NewStripeGateway(stripeClient client.StripeClient, currency string) PaymentGateway {
	return &stripeGateway{
		stripeClient: stripeClient,
		currency:     currency,
	}
}

func (g *stripeGateway) Provider() model.PaymentProvider {
	return model.PaymentProviderStripe
}

func (g *stripeGateway) CreateSession(ctx context.Context, purchase *model.PrepaidCardPurchase, urls RedirectURLs) (*SessionHandle, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			g.lineItem("Prepaid card - issuance", purchase.CardPrice),
			g.lineItem(fmt.Sprintf("Initial top-up %d %s", purchase.AmountSelected, g.currency), purchase.AmountSelected),
		},
		CustomerEmail: stripe.String(purchase.CustomerEmail),
		SuccessURL:    stripe.String(urls.Success + "&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(urls.Cancel),
	}
	params.AddMetadata("purchase_id", purchase.ID)
	params.AddMetadata("customer_name", purchase.CustomerName)
	params.AddMetadata("customer_phone", purchase.CustomerPhone)
	params.AddMetadata("delivery_method", string(purchase.DeliveryMethod))

	sess, err := g.stripeClient.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return &SessionHandle{
		Provider:  model.PaymentProviderStripe,
		URL:       sess.URL,
		Reference: sess.ID,
	}, nil
}

func (g *stripeGateway) Confirm(ctx context.Context, ref ConfirmationRef) (*ConfirmationResult, error) {
	sess, err := g.stripeClient.GetCheckoutSession(ctx, ref.SessionID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeConfirmation, err,
			apperr.Truncate("error confirming payment: "+err.Error(), confirmationMessageLimit))
	}

	purchaseID := sess.Metadata["purchase_id"]
	if purchaseID == "" {
		purchaseID = ref.PurchaseID
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid || purchaseID == "" {
		return nil, apperr.New(apperr.CodePaymentNotConfirmed, "payment not confirmed")
	}

	result := &ConfirmationResult{
		Status:       model.PaymentStatusPaid,
		Reference:    ref.SessionID,
		PurchaseID:   purchaseID,
		CustomerName: sess.Metadata["customer_name"],
	}
	if result.CustomerName == "" {
		result.CustomerName = "Customer"
	}
	if sess.CustomerDetails != nil {
		result.CustomerEmail = sess.CustomerDetails.Email
	}
	return result, nil
}

func (g *stripeGateway) lineItem(name string, amount int) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(g.currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
			UnitAmount: stripe.Int64(minorUnits(amount)),
		},
		Quantity: stripe.Int64(1),
	}
}

// minorUnits converts a whole-currency amount into cents.
func minorUnits(amount int) int64 {
	return decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromInt(100)).IntPart()
}
