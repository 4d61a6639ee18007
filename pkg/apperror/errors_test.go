package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectedErrorKeepsBackendMessage(t *testing.T) {
	err := NewRejectedError(http.StatusBadRequest, "Insufficient stock for Widget", nil)

	assert.Equal(t, "Insufficient stock for Widget", err.Error())
	assert.Equal(t, KindRejected, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestNewRejectedErrorFallbackMessage(t *testing.T) {
	err := NewRejectedError(http.StatusServiceUnavailable, "", nil)

	assert.Equal(t, "Request failed with status 503", err.Message)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
}

func TestIsKindThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", Validation("Cart is empty"))

	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(wrapped, KindRejected))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestGetAppErrorDefaultsToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.Equal(t, "boom", appErr.Message)
}

func TestExportErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("browser crashed")
	err := NewExportError("PDF export", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "PDF export failed: browser crashed", err.Message)
}

func TestSentinelMatching(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("print: %w", ErrNotReady), ErrNotReady)
	assert.NotErrorIs(t, ErrExportBusy, ErrNotReady)
}

func TestNewAppErrorInfersKind(t *testing.T) {
	assert.Equal(t, KindUnauthorized, NewAppError(http.StatusUnauthorized, "x").Kind)
	assert.Equal(t, KindConflict, NewAppError(http.StatusConflict, "x").Kind)
	assert.Equal(t, KindInternal, NewAppError(http.StatusTeapot, "x").Kind)
}

func TestNewUpstreamError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError(cause)

	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.ErrorIs(t, err, cause)
}
