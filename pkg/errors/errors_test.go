package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(ErrValidation))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(ErrEncoding))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(ErrDispatchPrecondition))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(ErrDispatch))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(fmt.Errorf("plain error")))
}

func TestWithCauseKeepsCode(t *testing.T) {
	cause := fmt.Errorf("channel not ready")
	err := ErrDispatch.WithCause(cause)

	assert.True(t, IsDispatch(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "channel not ready")

	// the sentinel itself is untouched
	assert.Nil(t, ErrDispatch.Cause)
}

func TestWithDetailDoesNotMutateSentinel(t *testing.T) {
	err := ErrDispatchPrecondition.WithDetail("transport", "push")

	assert.Equal(t, "push", err.Details["transport"])
	assert.Empty(t, ErrDispatchPrecondition.Details)

	// derived errors do not share a details map either
	other := err.WithDetail("transport", "queue")
	assert.Equal(t, "push", err.Details["transport"])
	assert.Equal(t, "queue", other.Details["transport"])
}

func TestToErrorResponse(t *testing.T) {
	response := ToErrorResponse(ErrValidation.WithCause(fmt.Errorf("timestamp is required")))

	assert.Equal(t, "VALIDATION_ERROR", response["error_code"])
	assert.Equal(t, "timestamp is required", response["message"])
}

func TestToErrorResponseWrapsUnknown(t *testing.T) {
	response := ToErrorResponse(fmt.Errorf("boom"))
	assert.Equal(t, "INTERNAL_ERROR", response["error_code"])
}
