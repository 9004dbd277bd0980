package handler

import (
	"errors"
	"fmt"
	"net/http"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/dto"
	"prepaid-card-backend/internal/logger"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every error as {code, detail, details}.
func HTTPErrorHandler(logg *logger.Logger) echo.HTTPErrorHandler {
	if logg == nil {
		logg = logger.Nop()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logg.Error(c.Request().Context(), "request failed", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logg.Error(c.Request().Context(), "write error response", writeErr)
		}
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	if typed := apperr.As(err); typed != nil {
		meta := apperr.MetadataFor(typed.Code())
		resp := dto.ErrorResponse{
			Code:   string(typed.Code()),
			Detail: typed.Message(),
		}
		if resp.Detail == "" {
			resp.Detail = meta.PublicMessage
		}
		if meta.DetailsAllowed {
			resp.Details = typed.Details()
		}
		if meta.HTTPStatus >= http.StatusInternalServerError {
			resp.Detail = meta.PublicMessage
		}
		return meta.HTTPStatus, resp
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		detail := http.StatusText(httpErr.Code)
		if httpErr.Message != nil {
			detail = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, dto.ErrorResponse{
			Code:   httpStatusCode(httpErr.Code),
			Detail: detail,
		}
	}

	meta := apperr.MetadataFor(apperr.CodeInternal)
	return meta.HTTPStatus, dto.ErrorResponse{
		Code:   string(apperr.CodeInternal),
		Detail: meta.PublicMessage,
	}
}

func httpStatusCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperr.CodeNotFound)
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= http.StatusInternalServerError {
		return string(apperr.CodeInternal)
	}
	return string(apperr.CodeValidation)
}
