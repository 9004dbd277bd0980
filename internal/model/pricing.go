package model

import "slices"

// PricingConfig is the read-only pricing exposed to clients and used to validate checkouts.
type PricingConfig struct {
	CardIssuePrice  int             `json:"card_issue_price"`
	TopupOptions    []int           `json:"topup_options"`
	Currency        string          `json:"currency"`
	PaymentProvider PaymentProvider `json:"payment_provider"`
}

func (p PricingConfig) AllowsTopup(amount int) bool {
	return slices.Contains(p.TopupOptions, amount)
}

func (p PricingConfig) Total(amount int) int {
	return p.CardIssuePrice + amount
}
