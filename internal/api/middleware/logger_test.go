package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger(t *testing.T) {
	logBuffer := new(bytes.Buffer)
	testLogger := slog.New(slog.NewJSONHandler(logBuffer, nil))

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"customerId":"1"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/customers", nil)
	req.RemoteAddr = "192.0.2.1:12345"
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-123"))
	rr := httptest.NewRecorder()

	StructuredLogger(testLogger)(nextHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &logEntry))
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "Served request", logEntry["msg"])
	assert.Equal(t, "POST", logEntry["method"])
	assert.Equal(t, "/customers", logEntry["path"])
	assert.Equal(t, float64(http.StatusCreated), logEntry["status"])
	assert.Equal(t, "req-123", logEntry["request_id"])
	assert.Equal(t, float64(len(`{"customerId":"1"}`)), logEntry["bytes_written"])
	assert.Contains(t, logEntry, "latency_ms")
}

func TestStructuredLogger_ServerErrorsLogAtError(t *testing.T) {
	logBuffer := new(bytes.Buffer)
	testLogger := slog.New(slog.NewJSONHandler(logBuffer, nil))

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	StructuredLogger(testLogger)(nextHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
}

func TestRequestLogLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/customers", http.StatusOK, slog.LevelInfo},
		{"/payments", http.StatusUnprocessableEntity, slog.LevelWarn},
		{"/dashboard", http.StatusInternalServerError, slog.LevelError},
		{"/health", http.StatusOK, slog.LevelDebug},
		{"/metrics", http.StatusOK, slog.LevelDebug},
		{"/health", http.StatusServiceUnavailable, slog.LevelError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requestLogLevel(tt.path, tt.status), "%s %d", tt.path, tt.status)
	}
}

func TestStructuredLogger_RoutePattern(t *testing.T) {
	logBuffer := new(bytes.Buffer)
	r := chi.NewRouter()
	r.Use(StructuredLogger(slog.New(slog.NewJSONHandler(logBuffer, nil))))
	r.Get("/customers/{customerID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customers/42", nil))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &logEntry))
	assert.Equal(t, "WARN", logEntry["level"])
	assert.Equal(t, "/customers/{customerID}", logEntry["route"])
	assert.Equal(t, "HTTP", logEntry["component"])
}
