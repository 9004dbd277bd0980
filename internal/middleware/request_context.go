package middleware

import (
	"prepaid-card-backend/internal/logger"

	"github.com/labstack/echo/v4"
)

// RequestContext attaches the request id to the logger carried by the request context.
// It must run after echo's RequestID middleware.
func RequestContext(logg *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if requestID != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logg.WithRequestID(req.Context(), requestID)))
			}
			return next(c)
		}
	}
}
