package dto

type CreateCheckoutRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Amount         int    `json:"amount"`
	DeliveryMethod string `json:"delivery_method" validate:"omitempty,oneof=pickup shipping"`
}

type CheckoutResponse struct {
	Provider   string `json:"provider"`
	URL        string `json:"url,omitempty"`
	Message    string `json:"message,omitempty"`
	PurchaseID string `json:"purchase_id,omitempty"`
	// DegradedFrom names the provider that failed before the mock fallback took over.
	DegradedFrom string `json:"degraded_from,omitempty"`
}

type ConfirmRequest struct {
	SessionID  string `query:"session_id"`
	PurchaseID string `query:"purchase_id"`
}

type ConfirmResponse struct {
	Status           string `json:"status"`
	PurchaseID       string `json:"purchase_id"`
	AlreadyConfirmed bool   `json:"already_confirmed,omitempty"`
}

type RootResponse struct {
	Message         string `json:"message"`
	PaymentProvider string `json:"payment_provider"`
}

type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Detail  string `json:"detail"`
	Details any    `json:"details,omitempty"`
}
