package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidAmount:       http.StatusBadRequest,
		CodeMissingParameter:    http.StatusBadRequest,
		CodePaymentNotConfirmed: http.StatusBadRequest,
		CodeConfirmation:        http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeStorageUnavailable:  http.StatusServiceUnavailable,
		Code("UNKNOWN"):         http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, MetadataFor(code).HTTPStatus, string(code))
	}
}

func TestAsFindsWrappedError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("create purchase: %w", Wrap(CodeStorageUnavailable, cause, "insert purchase"))

	typed := As(err)
	require.NotNil(t, typed)
	assert.Equal(t, CodeStorageUnavailable, typed.Code())
	assert.True(t, IsCode(err, CodeStorageUnavailable))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, As(cause))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "ñañ...", Truncate("ñañaña", 3))
}
