package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidAmount       Code = "INVALID_AMOUNT"
	CodeMissingParameter    Code = "MISSING_PARAMETER"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodePaymentNotConfirmed Code = "PAYMENT_NOT_CONFIRMED"
	CodeConfirmation        Code = "CONFIRMATION_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeStateConflict       Code = "STATE_CONFLICT"
	CodeStorageUnavailable  Code = "STORAGE_UNAVAILABLE"
	CodeInternal            Code = "INTERNAL_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeInvalidAmount: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "invalid amount",
		DetailsAllowed: true,
	},
	CodeMissingParameter: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "missing parameter",
	},
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodePaymentNotConfirmed: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "payment not confirmed",
	},
	CodeConfirmation: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "error confirming payment",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "resource not found",
	},
	CodeStateConflict: {
		HTTPStatus:    http.StatusConflict,
		PublicMessage: "state transition disallowed",
	},
	CodeStorageUnavailable: {
		HTTPStatus:    http.StatusServiceUnavailable,
		PublicMessage: "storage unavailable",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "internal server error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// Truncate shortens a diagnostic message to at most max runes.
func Truncate(msg string, max int) string {
	runes := []rune(msg)
	if max <= 0 || len(runes) <= max {
		return msg
	}
	return string(runes[:max]) + "..."
}
