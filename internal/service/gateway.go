package service

import (
	"context"

	"prepaid-card-backend/internal/model"
)

type RedirectURLs struct {
	Success string
	Cancel  string
}

// SessionHandle is what a gateway hands back after starting a checkout.
type SessionHandle struct {
	Provider  model.PaymentProvider
	URL       string
	Reference string
	// Paid is set when the gateway settled the purchase synchronously.
	Paid bool
}

type ConfirmationRef struct {
	SessionID  string
	PurchaseID string
}

type ConfirmationResult struct {
	Status        model.PaymentStatus
	Reference     string
	PurchaseID    string
	CustomerEmail string
	CustomerName  string
}

// PaymentGateway is selected once at startup and injected into the purchase service.
type PaymentGateway interface {
	Provider() model.PaymentProvider
	CreateSession(ctx context.Context, purchase *model.PrepaidCardPurchase, urls RedirectURLs) (*SessionHandle, error)
	Confirm(ctx context.Context, ref ConfirmationRef) (*ConfirmationResult, error)
}
