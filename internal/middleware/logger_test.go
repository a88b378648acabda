package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/internal/logger"
)

// captureLogs routes the global logger into a buffer for the test's duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(nil) })
	return &buf
}

// lastLine decodes the last JSON log line written to buf.
func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestRequestLogger_LevelAndRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/api/v1/brokers", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/api/v1/brokers/lookup", func(c *gin.Context) { c.String(http.StatusNotFound, "no data found") })
	router.GET("/api/v1/runs/latest", func(c *gin.Context) { c.String(http.StatusInternalServerError, "db down") })

	cases := []struct {
		name   string
		target string
		status int
		level  string
		route  string
	}{
		{name: "ok", target: "/api/v1/brokers?broker=B1", status: 200, level: "info", route: "/api/v1/brokers"},
		{name: "handler 404", target: "/api/v1/brokers/lookup?key=a%3Bb%3Bc", status: 404, level: "warn", route: "/api/v1/brokers/lookup"},
		{name: "unmatched 404", target: "/nope", status: 404, level: "warn", route: ""},
		{name: "server error", target: "/api/v1/runs/latest", status: 500, level: "error", route: "/api/v1/runs/latest"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if w.Code != tc.status {
				t.Fatalf("status %d, want %d", w.Code, tc.status)
			}

			entry := lastLine(t, buf)
			path := tc.target
			if i := strings.IndexByte(path, '?'); i >= 0 {
				path = path[:i]
			}
			want := map[string]any{
				"level":      tc.level,
				"component":  "http",
				"message":    "http_request",
				"method":     "GET",
				"path":       path,
				"route":      tc.route,
				"status":     float64(tc.status),
				"request_id": w.Header().Get(RequestIDHeader),
			}
			for k, v := range want {
				if entry[k] != v {
					t.Fatalf("%s = %v, want %v (line %v)", k, entry[k], v, entry)
				}
			}
			if _, ok := entry["latency_ms"]; !ok {
				t.Fatalf("latency_ms missing: %v", entry)
			}
		})
	}
}

func TestRequestLogger_ReusedRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	const id = "6f1c2f9e-3b7a-4f47-9a55-0c1c8a3e2b10"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if got := lastLine(t, buf)["request_id"]; got != id {
		t.Fatalf("request_id = %v, want %s", got, id)
	}
}

func TestToString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{123, ""},
	}
	for _, tc := range cases {
		if got := toString(tc.in); got != tc.want {
			t.Fatalf("toString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
