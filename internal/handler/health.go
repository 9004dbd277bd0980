package handler

import (
	"net/http"

	"prepaid-card-backend/internal/dto"
	"prepaid-card-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	healthService   service.HealthService
	purchaseService service.PurchaseService
}

func NewHealthHandler(healthService service.HealthService, purchaseService service.PurchaseService) *HealthHandler {
	return &HealthHandler{
		healthService:   healthService,
		purchaseService: purchaseService,
	}
}

func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.RootResponse{
		Message:         "backend operational",
		PaymentProvider: string(h.purchaseService.Config().PaymentProvider),
	})
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Diagnostics always answers 200; storage problems are described in the body.
func (h *HealthHandler) Diagnostics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.healthService.Diagnostics(c.Request().Context()))
}
