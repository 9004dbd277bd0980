package service

import (
	"context"

	"prepaid-card-backend/internal/logger"
)

// Notifier delivers purchase confirmations. Delivery is best effort and never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string)
}

type logNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier only writes the message to the log; no mail is sent.
func NewLogNotifier(logg *logger.Logger) Notifier {
	if logg == nil {
		logg = logger.Nop()
	}
	return &logNotifier{logg: logg}
}

func (n *logNotifier) Notify(ctx context.Context, to, subject, body string) {
	ctx = n.logg.WithFields(ctx, map[string]any{
		"to":      to,
		"subject": subject,
		"body":    body,
	})
	n.logg.Info(ctx, "confirmation email")
}
