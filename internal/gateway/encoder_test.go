package gateway

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAction(t *testing.T) {
	req := validRequest()
	timestamp, err := ParseTimestamp(req.Timestamp)
	require.NoError(t, err)

	encoded, err := EncodeAction(NewAction(req, timestamp))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))

	assert.Equal(t, "2023-01-01T10:00:00", decoded["timestamp"])
	assert.Equal(t, map[string]interface{}{}, decoded["context"])
	assert.Equal(t, "a type", decoded["eventType"])
	assert.Equal(t, "my-app", decoded["application"])
	assert.Equal(t, "my-bundle", decoded["bundle"])
	assert.Equal(t, "123", decoded["accountId"])

	events, ok := decoded["events"].([]interface{})
	require.True(t, ok)
	require.Len(t, events, 1)

	event, ok := events[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{}, event["metadata"])
	assert.Equal(t, map[string]interface{}{"key1": "value1"}, event["payload"])
}

func TestEncodeActionFieldOrder(t *testing.T) {
	req := validRequest()
	timestamp, err := ParseTimestamp(req.Timestamp)
	require.NoError(t, err)

	encoded, err := EncodeAction(NewAction(req, timestamp))
	require.NoError(t, err)

	fields := []string{`"timestamp"`, `"context"`, `"events"`, `"eventType"`, `"application"`, `"bundle"`, `"accountId"`}
	previous := -1
	for _, field := range fields {
		idx := strings.Index(encoded, field)
		require.GreaterOrEqual(t, idx, 0, "field %s missing", field)
		assert.Greater(t, idx, previous, "field %s out of schema order", field)
		previous = idx
	}
}

func TestEncodeActionDeterministic(t *testing.T) {
	req := validRequest()
	req.Payload = map[string]interface{}{"b": 2, "a": 1, "c": map[string]interface{}{"y": true, "x": false}}
	timestamp, err := ParseTimestamp(req.Timestamp)
	require.NoError(t, err)

	first, err := EncodeAction(NewAction(req, timestamp))
	require.NoError(t, err)
	second, err := EncodeAction(NewAction(req, timestamp))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeActionRoundTrip(t *testing.T) {
	req := validRequest()
	req.Payload = map[string]interface{}{
		"key1":   "value1",
		"nested": map[string]interface{}{"count": float64(3)},
	}
	timestamp, err := ParseTimestamp(req.Timestamp)
	require.NoError(t, err)
	action := NewAction(req, timestamp)

	encoded, err := EncodeAction(action)
	require.NoError(t, err)

	var decoded wireAction
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))

	parsed, err := ParseTimestamp(decoded.Timestamp)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(action.Timestamp))
	assert.Equal(t, action.EventType, decoded.EventType)
	assert.Equal(t, action.Application, decoded.Application)
	assert.Equal(t, action.Bundle, decoded.Bundle)
	assert.Equal(t, action.AccountID, decoded.AccountID)
	require.Len(t, decoded.Events, 1)
	assert.Equal(t, action.Events[0].Payload, decoded.Events[0].Payload)
}

func TestEncodeActionUnrepresentablePayload(t *testing.T) {
	req := validRequest()
	req.Payload = map[string]interface{}{"bad": make(chan int)}

	_, err := EncodeAction(NewAction(req, time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.Error(t, err)
}

func TestNewActionAlwaysOneEvent(t *testing.T) {
	req := validRequest()
	action := NewAction(req, time.Now())

	require.Len(t, action.Events, 1)
	assert.Empty(t, action.Events[0].Metadata)
	assert.Empty(t, action.Context)
	assert.Equal(t, req.Payload, action.Events[0].Payload)
}
