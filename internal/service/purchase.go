package service

import (
	"context"
	"fmt"
	"net/url"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/dto"
	"prepaid-card-backend/internal/logger"
	"prepaid-card-backend/internal/metrics"
	"prepaid-card-backend/internal/model"
	"prepaid-card-backend/internal/repository"
)

const confirmationSubject = "Purchase confirmation - Prepaid card"

type PurchaseService interface {
	Config() model.PricingConfig
	CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)
	Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error)
	GetPurchase(ctx context.Context, purchaseID string) (*model.PrepaidCardPurchase, error)
}

type PurchaseServiceParams struct {
	Pricing      model.PricingConfig
	FrontendURL  string
	PurchaseRepo repository.PurchaseRepository
	// Gateway is the active provider; Fallback takes over when a stripe session cannot be created.
	Gateway  PaymentGateway
	Fallback PaymentGateway
	Notifier Notifier
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
}

type purchaseServiceImpl struct {
	pricing      model.PricingConfig
	frontendURL  string
	purchaseRepo repository.PurchaseRepository
	gateway      PaymentGateway
	fallback     PaymentGateway
	notifier     Notifier
	logg         *logger.Logger
	metrics      *metrics.Metrics
}

func NewPurchaseService(params PurchaseServiceParams) PurchaseService {
	s := &purchaseServiceImpl{
		pricing:      params.Pricing,
		frontendURL:  params.FrontendURL,
		purchaseRepo: params.PurchaseRepo,
		gateway:      params.Gateway,
		fallback:     params.Fallback,
		notifier:     params.Notifier,
		logg:         params.Logger,
		metrics:      params.Metrics,
	}
	if s.logg == nil {
		s.logg = logger.Nop()
	}
	if s.fallback == nil {
		s.fallback = NewMockGateway(s.purchaseRepo)
	}
	if s.gateway == nil {
		s.gateway = s.fallback
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logg)
	}
	s.pricing.PaymentProvider = s.gateway.Provider()
	return s
}

func (s *purchaseServiceImpl) Config() model.PricingConfig {
	pricing := s.pricing
	pricing.TopupOptions = append([]int(nil), s.pricing.TopupOptions...)
	return pricing
}

func (s *purchaseServiceImpl) CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if !s.pricing.AllowsTopup(req.Amount) {
		return nil, apperr.New(apperr.CodeInvalidAmount, "invalid amount").
			WithDetails(map[string]any{"amount": req.Amount, "topup_options": s.pricing.TopupOptions})
	}

	delivery := model.DeliveryMethod(req.DeliveryMethod)
	if delivery == "" {
		delivery = model.DeliveryMethodPickup
	}

	purchase := &model.PrepaidCardPurchase{
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		AmountSelected:  req.Amount,
		CardPrice:       s.pricing.CardIssuePrice,
		TotalPrice:      s.pricing.Total(req.Amount),
		PaymentProvider: s.gateway.Provider(),
		DeliveryMethod:  delivery,
	}
	purchaseID, err := s.purchaseRepo.Create(ctx, purchase)
	if err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}
	ctx = s.logg.WithPurchaseID(ctx, purchaseID)

	urls := s.redirectURLs(purchaseID)

	var degradedFrom string
	handle, err := s.gateway.CreateSession(ctx, purchase, urls)
	if err != nil {
		if s.gateway.Provider() == s.fallback.Provider() {
			return nil, err
		}
		// the payer gets a simulated payment instead of an error
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout session creation failed, falling back to mock")
		s.metrics.RecordFallback()
		degradedFrom = string(s.gateway.Provider())

		handle, err = s.fallback.CreateSession(ctx, purchase, urls)
		if err != nil {
			return nil, err
		}
	}
	s.metrics.RecordCheckout(string(handle.Provider))

	if !handle.Paid {
		s.logg.Info(ctx, "checkout session created")
		return &dto.CheckoutResponse{
			Provider:   string(handle.Provider),
			URL:        handle.URL,
			PurchaseID: purchaseID,
		}, nil
	}

	s.notifier.Notify(ctx, purchase.CustomerEmail, confirmationSubject, fmt.Sprintf(
		"Hello %s,\n\nThank you for your purchase. We have received your payment of %d %s. "+
			"You can pick up your card at the shop or receive it by post according to your selection.\n\n"+
			"Purchase ID: %s\nDelivery method: %s\n\nThank you for choosing us.",
		purchase.CustomerName, purchase.TotalPrice, s.pricing.Currency, purchaseID, purchase.DeliveryMethod,
	))

	return &dto.CheckoutResponse{
		Provider:     string(handle.Provider),
		URL:          handle.URL,
		Message:      "simulated payment succeeded",
		PurchaseID:   purchaseID,
		DegradedFrom: degradedFrom,
	}, nil
}

func (s *purchaseServiceImpl) Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	if s.gateway.Provider() == model.PaymentProviderStripe {
		if req.SessionID == "" {
			return s.confirmSettledByFallback(ctx, req.PurchaseID)
		}
		return s.confirmStripe(ctx, req)
	}

	if req.PurchaseID == "" {
		return nil, apperr.New(apperr.CodeMissingParameter, "missing purchase_id")
	}

	result, err := s.gateway.Confirm(ctx, ConfirmationRef{PurchaseID: req.PurchaseID})
	if err != nil {
		s.metrics.RecordConfirmation(string(model.PaymentProviderMock), "error")
		return nil, err
	}
	if result.Status != model.PaymentStatusPaid {
		s.metrics.RecordConfirmation(string(model.PaymentProviderMock), "not_confirmed")
		return nil, apperr.New(apperr.CodePaymentNotConfirmed, "payment not confirmed")
	}
	s.metrics.RecordConfirmation(string(model.PaymentProviderMock), string(result.Status))

	return &dto.ConfirmResponse{
		Status:     "ok",
		PurchaseID: result.PurchaseID,
	}, nil
}

func (s *purchaseServiceImpl) GetPurchase(ctx context.Context, purchaseID string) (*model.PrepaidCardPurchase, error) {
	return s.purchaseRepo.FindByID(ctx, purchaseID)
}

func (s *purchaseServiceImpl) confirmStripe(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	provider := string(model.PaymentProviderStripe)

	result, err := s.gateway.Confirm(ctx, ConfirmationRef{
		SessionID:  req.SessionID,
		PurchaseID: req.PurchaseID,
	})
	if err != nil {
		if apperr.IsCode(err, apperr.CodePaymentNotConfirmed) {
			s.metrics.RecordConfirmation(provider, "not_confirmed")
			return nil, err
		}
		s.metrics.RecordConfirmation(provider, "error")
		if apperr.IsCode(err, apperr.CodeConfirmation) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.CodeConfirmation, err,
			apperr.Truncate("error confirming payment: "+err.Error(), confirmationMessageLimit))
	}
	ctx = s.logg.WithPurchaseID(ctx, result.PurchaseID)

	transitioned, err := s.purchaseRepo.MarkPaid(ctx, result.PurchaseID, model.PaymentProviderStripe, result.Reference)
	if err != nil {
		s.metrics.RecordConfirmation(provider, "error")
		return nil, err
	}

	if !transitioned {
		s.logg.Info(ctx, "payment already confirmed")
		s.metrics.RecordConfirmation(provider, "already_confirmed")
		return &dto.ConfirmResponse{
			Status:           "ok",
			PurchaseID:       result.PurchaseID,
			AlreadyConfirmed: true,
		}, nil
	}

	s.metrics.RecordConfirmation(provider, string(model.PaymentStatusPaid))
	if result.CustomerEmail != "" {
		s.notifier.Notify(ctx, result.CustomerEmail, confirmationSubject, fmt.Sprintf(
			"Hello %s,\n\nWe have received your payment. Purchase ID: %s\n"+
				"We will send you instructions to pick up your card at the shop or by post.\n\nThank you.",
			result.CustomerName, result.PurchaseID,
		))
	}

	return &dto.ConfirmResponse{
		Status:     "ok",
		PurchaseID: result.PurchaseID,
	}, nil
}

// confirmSettledByFallback accepts a confirmation without session_id only for
// purchases that the mock fallback already settled.
func (s *purchaseServiceImpl) confirmSettledByFallback(ctx context.Context, purchaseID string) (*dto.ConfirmResponse, error) {
	if purchaseID == "" {
		return nil, apperr.New(apperr.CodeMissingParameter, "missing session_id")
	}

	result, err := s.fallback.Confirm(ctx, ConfirmationRef{PurchaseID: purchaseID})
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, apperr.New(apperr.CodeMissingParameter, "missing session_id")
		}
		return nil, err
	}
	if result.Status != model.PaymentStatusPaid || result.Reference != model.MockPaymentReference {
		return nil, apperr.New(apperr.CodeMissingParameter, "missing session_id")
	}

	s.metrics.RecordConfirmation(string(model.PaymentProviderMock), string(result.Status))
	return &dto.ConfirmResponse{
		Status:     "ok",
		PurchaseID: result.PurchaseID,
	}, nil
}

func (s *purchaseServiceImpl) redirectURLs(purchaseID string) RedirectURLs {
	id := url.QueryEscape(purchaseID)
	return RedirectURLs{
		Success: fmt.Sprintf("%s/exito?purchase_id=%s", s.frontendURL, id),
		Cancel:  fmt.Sprintf("%s/cancelado?purchase_id=%s", s.frontendURL, id),
	}
}
