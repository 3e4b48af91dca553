package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/appraisal-annotator/pkg/ctxutil"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("log output is not a JSON line: %v (%q)", err, buf.String())
	}
	return m
}

func TestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["alice"]`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	Logger(logger)(handler).ServeHTTP(rec, req)

	m := decodeLogLine(t, &buf)
	if m["msg"] != "http.request" {
		t.Errorf("msg = %v, want http.request", m["msg"])
	}
	if m["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", m["level"])
	}
	if m["method"] != "GET" {
		t.Errorf("method = %v, want GET", m["method"])
	}
	if m["path"] != "/api/users" {
		t.Errorf("path = %v, want /api/users", m["path"])
	}
	if m["status"] != float64(200) {
		t.Errorf("status = %v, want 200", m["status"])
	}
	if m["bytes"] != float64(len(`["alice"]`)) {
		t.Errorf("bytes = %v, want %d", m["bytes"], len(`["alice"]`))
	}
	if _, ok := m["duration"]; !ok {
		t.Error("expected duration attribute")
	}
}

func TestLogger_ServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK) // ignored by the wrapper
	})

	req := httptest.NewRequest(http.MethodPost, "/api/save_annotation", nil)
	rec := httptest.NewRecorder()
	Logger(logger)(handler).ServeHTTP(rec, req)

	m := decodeLogLine(t, &buf)
	if m["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", m["level"])
	}
	if m["status"] != float64(500) {
		t.Errorf("status = %v, want 500", m["status"])
	}
}

func TestLogger_ClientErrorIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	Logger(logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))

	m := decodeLogLine(t, &buf)
	if m["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", m["level"])
	}
}

func TestLogger_IncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "test-request-id-123"))
	rec := httptest.NewRecorder()
	Logger(logger)(handler).ServeHTTP(rec, req)

	m := decodeLogLine(t, &buf)
	if m["request_id"] != "test-request-id-123" {
		t.Errorf("request_id = %v, want test-request-id-123", m["request_id"])
	}
}
