package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"prepaid-card-backend/internal/config"
	"prepaid-card-backend/internal/dto"
	"prepaid-card-backend/internal/logger"
	"prepaid-card-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T, environ map[string]string) *application {
	t.Helper()

	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)

	app := newApplication(cfg, logger.Nop())
	t.Cleanup(app.close)
	return app
}

func serve(app *application, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewApplication_MockWithSqlite(t *testing.T) {
	app := newTestApplication(t, map[string]string{
		"DATABASE_URL": filepath.Join(t.TempDir(), "prepaid.db"),
	})
	require.NotNil(t, app.db)
	assert.Equal(t, model.PaymentProviderMock, app.provider)

	rec := serve(app, http.MethodPost, "/api/prepaid/create-checkout",
		`{"name":"Ana","email":"ana@example.com","phone":"600000000","amount":20}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var checkout dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))
	assert.Equal(t, "mock", checkout.Provider)

	rec = serve(app, http.MethodGet, "/api/prepaid/purchases/"+checkout.PurchaseID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var purchase model.PrepaidCardPurchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchase))
	assert.Equal(t, model.PaymentStatusPaid, purchase.PaymentStatus)
	assert.Equal(t, 25, purchase.TotalPrice)
}

func TestNewApplication_StartsWithoutDatabase(t *testing.T) {
	app := newTestApplication(t, map[string]string{})
	assert.Nil(t, app.db)

	rec := serve(app, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var diag dto.DiagnosticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &diag))
	assert.Equal(t, "not initialized", diag.Database)

	rec = serve(app, http.MethodPost, "/api/prepaid/create-checkout",
		`{"name":"Ana","email":"ana@example.com","phone":"600000000","amount":20}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewApplication_StripeKeySelectsStripe(t *testing.T) {
	app := newTestApplication(t, map[string]string{"STRIPE_SECRET_KEY": "sk_test_123"})
	assert.Equal(t, model.PaymentProviderStripe, app.provider)

	rec := serve(app, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pricing model.PricingConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pricing))
	assert.Equal(t, model.PaymentProviderStripe, pricing.PaymentProvider)

	rec = serve(app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
