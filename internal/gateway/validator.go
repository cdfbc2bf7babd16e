package gateway

import (
	"fmt"
	"time"

	"notigw/internal/constants"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidateForwardRequest checks every required field and parses the
// timestamp. On success the parsed timestamp is returned so the caller can
// build an Action without touching the raw string again.
func ValidateForwardRequest(req *ForwardRequest) (time.Time, error) {
	if req == nil {
		return time.Time{}, &ValidationError{
			Field:   "request",
			Message: "request cannot be nil",
		}
	}

	if req.AccountID == "" {
		return time.Time{}, &ValidationError{
			Field:   "accountId",
			Message: "account ID is required",
		}
	}

	if req.Bundle == "" {
		return time.Time{}, &ValidationError{
			Field:   "bundle",
			Message: "bundle is required",
		}
	}

	if req.Application == "" {
		return time.Time{}, &ValidationError{
			Field:   "application",
			Message: "application is required",
		}
	}

	if req.EventType == "" {
		return time.Time{}, &ValidationError{
			Field:   "eventType",
			Message: "event type is required",
		}
	}

	if req.Timestamp == "" {
		return time.Time{}, &ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		}
	}

	parsed, err := ParseTimestamp(req.Timestamp)
	if err != nil {
		return time.Time{}, &ValidationError{
			Field:   "timestamp",
			Message: fmt.Sprintf("must be an ISO local date-time: %v", err),
		}
	}

	if req.Payload == nil {
		return time.Time{}, &ValidationError{
			Field:   "payload",
			Message: "payload is required",
		}
	}

	return parsed, nil
}

// ParseTimestamp accepts the ISO local date-time format with an optional
// fractional second and no offset or zone.
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(constants.TimestampLayout, value)
}

// FormatTimestamp is the inverse of ParseTimestamp; the fractional part is
// omitted when zero.
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.TimestampLayout)
}
