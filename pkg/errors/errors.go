package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = NewError("VALIDATION_ERROR", "validation failed", http.StatusBadRequest)
	ErrEncoding   = NewError("ENCODING_ERROR", "failed to encode action", http.StatusInternalServerError)
	// ErrDispatchPrecondition marks a configuration defect, not a transient
	// condition: the push transport was selected with no sink URL set.
	ErrDispatchPrecondition = NewError("DISPATCH_PRECONDITION", "no sink configured", http.StatusInternalServerError)
	ErrDispatch             = NewError("DISPATCH_FAILED", "failed to forward action", http.StatusInternalServerError)
	ErrRateLimited          = NewError("RATE_LIMIT_EXCEEDED", "rate limit exceeded", http.StatusTooManyRequests)
	ErrInternal             = NewError("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
)

type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]interface{}
	Cause   error
}

func NewError(code, message string, status int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Details: make(map[string]interface{}),
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithCause(cause error) *Error {
	err := *e
	err.Cause = cause
	return &err
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	err := *e
	// copy, not alias: the receiver is usually a shared sentinel
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	err.Details = details
	return &err
}

func Is(err error, target *Error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == target.Code
	}
	return false
}

func IsValidation(err error) bool {
	return Is(err, ErrValidation)
}

func IsDispatch(err error) bool {
	return Is(err, ErrDispatch) || Is(err, ErrDispatchPrecondition)
}

func ToHTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

func ToErrorResponse(err error) map[string]interface{} {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = ErrInternal.WithCause(err)
	}

	response := map[string]interface{}{
		"error":      appErr.Message,
		"error_code": appErr.Code,
	}

	if appErr.Cause != nil {
		response["message"] = appErr.Cause.Error()
	}

	if len(appErr.Details) > 0 {
		response["details"] = appErr.Details
	}

	return response
}
