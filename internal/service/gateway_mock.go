package service

import (
	"context"

	"prepaid-card-backend/internal/model"
	"prepaid-card-backend/internal/repository"
)

// mockGateway settles every checkout immediately without contacting a provider.
type mockGateway struct {
	purchaseRepo repository.PurchaseRepository
}

func NewMockGateway(purchaseRepo repository.PurchaseRepository) PaymentGateway {
	return &mockGateway{
		purchaseRepo: purchaseRepo,
	}
}

func (g *mockGateway) Provider() model.PaymentProvider {
	return model.PaymentProviderMock
}

func (g *mockGateway) CreateSession(ctx context.Context, purchase *model.PrepaidCardPurchase, urls RedirectURLs) (*SessionHandle, error) {
	if _, err := g.purchaseRepo.MarkPaid(ctx, purchase.ID, model.PaymentProviderMock, model.MockPaymentReference); err != nil {
		return nil, err
	}

	return &SessionHandle{
		Provider:  model.PaymentProviderMock,
		URL:       urls.Success,
		Reference: model.MockPaymentReference,
		Paid:      true,
	}, nil
}

func (g *mockGateway) Confirm(ctx context.Context, ref ConfirmationRef) (*ConfirmationResult, error) {
	purchase, err := g.purchaseRepo.FindByID(ctx, ref.PurchaseID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmationResult{
		Status:        purchase.PaymentStatus,
		PurchaseID:    purchase.ID,
		CustomerEmail: purchase.CustomerEmail,
		CustomerName:  purchase.CustomerName,
	}
	if purchase.PaymentReference != nil {
		result.Reference = *purchase.PaymentReference
	}
	return result, nil
}
