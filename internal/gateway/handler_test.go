package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notigw/internal/logger"
)

func setupTestRouter(queueEnabled bool, queue Sink, push Sink) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	svc := newTestService(queueEnabled, queue, push)
	NewHandler(svc, logger.NopLogger()).RegisterRoutes(router)

	return router
}

func postNotification(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func requestBody(t *testing.T, mutate func(m map[string]interface{})) string {
	m := map[string]interface{}{
		"accountId":   "123",
		"bundle":      "my-bundle",
		"application": "my-app",
		"eventType":   "a type",
		"timestamp":   "2023-01-01T10:00:00",
		"payload":     map[string]interface{}{"key1": "value1"},
	}
	mutate(m)
	body, err := json.Marshal(m)
	require.NoError(t, err)
	return string(body)
}

func TestForwardEndpointQueueEnabled(t *testing.T) {
	queue := &fakeSink{}
	push := &fakeSink{}
	router := setupTestRouter(true, queue, push)

	w := postNotification(router, requestBody(t, func(m map[string]interface{}) {}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, 1, queue.calls)
	assert.Equal(t, 0, push.calls)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(queue.lastPayload), &payload))
	events := payload["events"].([]interface{})
	event := events[0].(map[string]interface{})
	assert.Equal(t, "value1", event["payload"].(map[string]interface{})["key1"])
}

func TestForwardEndpointValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
	}{
		{name: "missing account id", mutate: func(m map[string]interface{}) { delete(m, "accountId") }},
		{name: "missing bundle", mutate: func(m map[string]interface{}) { delete(m, "bundle") }},
		{name: "missing application", mutate: func(m map[string]interface{}) { delete(m, "application") }},
		{name: "missing event type", mutate: func(m map[string]interface{}) { delete(m, "eventType") }},
		{name: "missing timestamp", mutate: func(m map[string]interface{}) { delete(m, "timestamp") }},
		{name: "unparsable timestamp", mutate: func(m map[string]interface{}) { m["timestamp"] = "not-a-date" }},
		{name: "missing payload", mutate: func(m map[string]interface{}) { delete(m, "payload") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &fakeSink{}
			push := &fakeSink{}
			router := setupTestRouter(true, queue, push)

			w := postNotification(router, requestBody(t, tt.mutate))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, queue.calls)
			assert.Equal(t, 0, push.calls)
		})
	}
}

func TestForwardEndpointMalformedJSON(t *testing.T) {
	router := setupTestRouter(true, &fakeSink{}, &fakeSink{})

	w := postNotification(router, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForwardEndpointNoSinkConfigured(t *testing.T) {
	router := setupTestRouter(false, &fakeSink{}, NewPushSink(""))

	w := postNotification(router, requestBody(t, func(m map[string]interface{}) {}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "DISPATCH_PRECONDITION", response["error_code"])
}

func TestForwardEndpointPushToSink(t *testing.T) {
	var gotHeaders http.Header
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	queue := &fakeSink{}
	router := setupTestRouter(false, queue, NewPushSink(server.URL))

	w := postNotification(router, requestBody(t, func(m map[string]interface{}) {}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, queue.calls)

	assert.Equal(t, "1.0", gotHeaders.Get("Ce-Specversion"))
	assert.Equal(t, "123", gotHeaders.Get("Ce-rhaccount"))
	assert.NotEmpty(t, gotHeaders.Get("Ce-Id"))
	assert.NotEmpty(t, gotHeaders.Get("Ce-Type"))
	assert.NotEmpty(t, gotHeaders.Get("Ce-Source"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Contains(t, gotBody, `"accountId":"123"`)
}

func TestForwardEndpointDispatchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	router := setupTestRouter(false, &fakeSink{}, NewPushSink(server.URL))

	w := postNotification(router, requestBody(t, func(m map[string]interface{}) {}))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSampleEndpoint(t *testing.T) {
	router := setupTestRouter(true, &fakeSink{}, &fakeSink{})

	req := httptest.NewRequest(http.MethodGet, "/notifications/sample", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var sample ForwardRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sample))
	assert.Equal(t, "123", sample.AccountID)
	assert.Equal(t, "my-bundle", sample.Bundle)
	assert.Equal(t, "my-app", sample.Application)
	assert.Equal(t, "a type", sample.EventType)
	assert.Equal(t, map[string]interface{}{"key1": "value1", "key2": "value2"}, sample.Payload)

	parsed, err := ParseTimestamp(sample.Timestamp)
	require.NoError(t, err)
	now, err := ParseTimestamp(FormatTimestamp(time.Now()))
	require.NoError(t, err)
	assert.WithinDuration(t, now, parsed, time.Minute)
}
