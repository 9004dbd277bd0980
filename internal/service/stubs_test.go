package service

import (
	"context"
	"sync"

	"github.com/stripe/stripe-go/v84"
)

type stubStripeClient struct {
	createResp   *stripe.CheckoutSession
	createErr    error
	createParams *stripe.CheckoutSessionParams

	getResp  *stripe.CheckoutSession
	getErr   error
	getCalls []string
}

func (s *stubStripeClient) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.createParams = params
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createResp, nil
}

func (s *stubStripeClient) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	s.getCalls = append(s.getCalls, sessionID)
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResp, nil
}

type sentNotification struct {
	to      string
	subject string
	body    string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(ctx context.Context, to, subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{to: to, subject: subject, body: body})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
