package handler

import (
	"net/http"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/dto"
	"prepaid-card-backend/internal/service"

	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.purchaseService.Config())
}

func (h *PurchaseHandler) CreateCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.CodeValidation, err, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.purchaseService.CreateCheckout(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Confirm is the landing call made by the frontend after the provider redirect.
func (h *PurchaseHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.CodeValidation, err, "invalid query parameters")
	}

	result, err := h.purchaseService.Confirm(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PurchaseHandler) GetPurchase(c echo.Context) error {
	ctx := c.Request().Context()

	purchaseID := c.Param("id")
	if purchaseID == "" {
		return apperr.New(apperr.CodeMissingParameter, "missing purchase id")
	}

	purchase, err := h.purchaseService.GetPurchase(ctx, purchaseID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, purchase)
}
