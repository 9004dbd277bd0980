package model

import "time"

type PaymentProvider string

const (
	PaymentProviderStripe PaymentProvider = "stripe"
	PaymentProviderMock   PaymentProvider = "mock"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodShipping DeliveryMethod = "shipping"
)

// MockPaymentReference is stored on purchases settled by the mock provider.
const MockPaymentReference = "mock-ok"

// PrepaidCardPurchase is one attempt to buy a prepaid card with an initial top-up.
type PrepaidCardPurchase struct {
	ID               string          `gorm:"primaryKey;size:36;not null" json:"id"`
	CustomerName     string          `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail    string          `gorm:"size:255;index;not null" json:"customer_email"`
	CustomerPhone    string          `gorm:"size:64;not null" json:"customer_phone"`
	AmountSelected   int             `gorm:"not null" json:"amount_selected"`
	CardPrice        int             `gorm:"not null" json:"card_price"`
	TotalPrice       int             `gorm:"not null" json:"total_price"` // card_price + amount_selected
	PaymentProvider  PaymentProvider `gorm:"size:16;not null" json:"payment_provider"`
	PaymentStatus    PaymentStatus   `gorm:"size:16;index;not null" json:"payment_status"` // pending, paid, failed
	PaymentReference *string         `gorm:"size:255" json:"payment_reference"`
	DeliveryMethod   DeliveryMethod  `gorm:"size:16;not null" json:"delivery_method"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (PrepaidCardPurchase) TableName() string {
	return "prepaid_card_purchases"
}
