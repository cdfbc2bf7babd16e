package gateway

import (
	"encoding/json"
	"fmt"
)

// wireAction fixes the field names, nesting, and order of the egress schema.
// Downstream consumers depend on this exact shape; changing it is a breaking
// schema change.
type wireAction struct {
	Timestamp   string                 `json:"timestamp"`
	Context     map[string]interface{} `json:"context"`
	Events      []wireEvent            `json:"events"`
	EventType   string                 `json:"eventType"`
	Application string                 `json:"application"`
	Bundle      string                 `json:"bundle"`
	AccountID   string                 `json:"accountId"`
}

type wireEvent struct {
	Metadata map[string]interface{} `json:"metadata"`
	Payload  map[string]interface{} `json:"payload"`
}

// EncodeAction serializes an Action into the egress schema. Identical logical
// content encodes to identical bytes. Failure is only possible for payload or
// context values JSON cannot represent and is a server-side condition.
func EncodeAction(action Action) (string, error) {
	wire := wireAction{
		Timestamp:   FormatTimestamp(action.Timestamp),
		Context:     action.Context,
		Events:      make([]wireEvent, 0, len(action.Events)),
		EventType:   action.EventType,
		Application: action.Application,
		Bundle:      action.Bundle,
		AccountID:   action.AccountID,
	}

	if wire.Context == nil {
		wire.Context = make(map[string]interface{})
	}

	for _, event := range action.Events {
		we := wireEvent{
			Metadata: event.Metadata,
			Payload:  event.Payload,
		}
		if we.Metadata == nil {
			we.Metadata = make(map[string]interface{})
		}
		if we.Payload == nil {
			we.Payload = make(map[string]interface{})
		}
		wire.Events = append(wire.Events, we)
	}

	encoded, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("failed to serialize action: %w", err)
	}

	return string(encoded), nil
}
