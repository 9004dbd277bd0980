package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
)

func samplePurchase() *model.PrepaidCardPurchase {
	return &model.PrepaidCardPurchase{
		ID:              "p-1",
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "600000000",
		AmountSelected:  20,
		CardPrice:       5,
		TotalPrice:      25,
		PaymentProvider: model.PaymentProviderStripe,
		PaymentStatus:   model.PaymentStatusPending,
		DeliveryMethod:  model.DeliveryMethodShipping,
	}
}

func TestStripeGateway_CreateSessionBuildsParams(t *testing.T) {
	stub := &stubStripeClient{createResp: &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"}}
	gateway := NewStripeGateway(stub, "eur")

	handle, err := gateway.CreateSession(context.Background(), samplePurchase(), RedirectURLs{
		Success: "http://front/exito?purchase_id=p-1",
		Cancel:  "http://front/cancelado?purchase_id=p-1",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentProviderStripe, handle.Provider)
	assert.Equal(t, "https://checkout.stripe.test/cs_1", handle.URL)
	assert.Equal(t, "cs_1", handle.Reference)
	assert.False(t, handle.Paid)

	params := stub.createParams
	require.NotNil(t, params)
	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	assert.Equal(t, "ana@example.com", *params.CustomerEmail)
	assert.Equal(t, "http://front/exito?purchase_id=p-1&session_id={CHECKOUT_SESSION_ID}", *params.SuccessURL)
	assert.Equal(t, "http://front/cancelado?purchase_id=p-1", *params.CancelURL)

	require.Len(t, params.LineItems, 2)
	assert.Equal(t, int64(500), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2000), *params.LineItems[1].PriceData.UnitAmount)
	assert.Equal(t, "eur", *params.LineItems[1].PriceData.Currency)
	assert.Equal(t, int64(1), *params.LineItems[0].Quantity)

	assert.Equal(t, "p-1", params.Metadata["purchase_id"])
	assert.Equal(t, "Ana", params.Metadata["customer_name"])
	assert.Equal(t, "600000000", params.Metadata["customer_phone"])
	assert.Equal(t, "shipping", params.Metadata["delivery_method"])
}

func TestStripeGateway_CreateSessionPropagatesError(t *testing.T) {
	gateway := NewStripeGateway(&stubStripeClient{createErr: errors.New("api down")}, "eur")

	_, err := gateway.CreateSession(context.Background(), samplePurchase(), RedirectURLs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api down")
}

func TestStripeGateway_ConfirmPaid(t *testing.T) {
	stub := &stubStripeClient{getResp: &stripe.CheckoutSession{
		ID:              "cs_1",
		PaymentStatus:   stripe.CheckoutSessionPaymentStatusPaid,
		Metadata:        map[string]string{"purchase_id": "p-1", "customer_name": "Ana"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "ana@example.com"},
	}}
	gateway := NewStripeGateway(stub, "eur")

	result, err := gateway.Confirm(context.Background(), ConfirmationRef{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPaid, result.Status)
	assert.Equal(t, "cs_1", result.Reference)
	assert.Equal(t, "p-1", result.PurchaseID)
	assert.Equal(t, "ana@example.com", result.CustomerEmail)
	assert.Equal(t, "Ana", result.CustomerName)
	assert.Equal(t, []string{"cs_1"}, stub.getCalls)
}

func TestStripeGateway_ConfirmFallsBackToRequestPurchaseID(t *testing.T) {
	stub := &stubStripeClient{getResp: &stripe.CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
	}}
	gateway := NewStripeGateway(stub, "eur")

	result, err := gateway.Confirm(context.Background(), ConfirmationRef{SessionID: "cs_1", PurchaseID: "p-9"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", result.PurchaseID)
	assert.Equal(t, "Customer", result.CustomerName)
	assert.Empty(t, result.CustomerEmail)
}

func TestStripeGateway_ConfirmUnpaid(t *testing.T) {
	stub := &stubStripeClient{getResp: &stripe.CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
		Metadata:      map[string]string{"purchase_id": "p-1"},
	}}
	gateway := NewStripeGateway(stub, "eur")

	_, err := gateway.Confirm(context.Background(), ConfirmationRef{SessionID: "cs_1"})
	assert.True(t, apperr.IsCode(err, apperr.CodePaymentNotConfirmed))
}

func TestStripeGateway_ConfirmProviderErrorIsTruncated(t *testing.T) {
	stub := &stubStripeClient{getErr: errors.New(strings.Repeat("x", 500))}
	gateway := NewStripeGateway(stub, "eur")

	_, err := gateway.Confirm(context.Background(), ConfirmationRef{SessionID: "cs_1"})
	typed := apperr.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperr.CodeConfirmation, typed.Code())
	assert.LessOrEqual(t, len([]rune(typed.Message())), confirmationMessageLimit+3)
	assert.True(t, strings.HasPrefix(typed.Message(), "error confirming payment: "))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(0), minorUnits(0))
	assert.Equal(t, int64(500), minorUnits(5))
	assert.Equal(t, int64(5000), minorUnits(50))
}
