package gateway

import (
	"time"

	"notigw/internal/constants"
)

// ForwardRequest is one action submitted by a producer. Timestamp is an ISO
// local date-time string; it is parsed during validation, never stored raw in
// an Action.
type ForwardRequest struct {
	AccountID   string                 `json:"accountId" binding:"required"`
	Bundle      string                 `json:"bundle" binding:"required"`
	Application string                 `json:"application" binding:"required"`
	EventType   string                 `json:"eventType" binding:"required"`
	Timestamp   string                 `json:"timestamp" binding:"required"`
	Payload     map[string]interface{} `json:"payload" binding:"required"`
}

// Action is the canonical forwarded event. It is built from a validated
// request, immediately encoded, and discarded; it never outlives the request.
type Action struct {
	Timestamp   time.Time
	Context     map[string]interface{}
	Events      []Event
	EventType   string
	Application string
	Bundle      string
	AccountID   string
}

type Event struct {
	Metadata map[string]interface{}
	Payload  map[string]interface{}
}

// NewAction wraps the request payload in a single event with empty metadata.
// Context is reserved for cross-event data and stays empty for now.
func NewAction(req ForwardRequest, timestamp time.Time) Action {
	payload := req.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}

	return Action{
		Timestamp: timestamp,
		Context:   make(map[string]interface{}),
		Events: []Event{
			{
				Metadata: make(map[string]interface{}),
				Payload:  payload,
			},
		},
		EventType:   req.EventType,
		Application: req.Application,
		Bundle:      req.Bundle,
		AccountID:   req.AccountID,
	}
}

// SampleRequest returns a schema-valid example for client integration tests.
func SampleRequest() ForwardRequest {
	return ForwardRequest{
		AccountID:   "123",
		Bundle:      "my-bundle",
		Application: "my-app",
		EventType:   "a type",
		Timestamp:   time.Now().Format(constants.TimestampLayout),
		Payload: map[string]interface{}{
			"key1": "value1",
			"key2": "value2",
		},
	}
}
