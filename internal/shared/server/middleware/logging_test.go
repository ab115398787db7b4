package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"verdicto-api/internal/shared/telemetry"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := telemetry.L()
	telemetry.SetLogger(zap.New(core))
	t.Cleanup(func() { telemetry.SetLogger(prev) })
	return logs
}

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observeLogs(t)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/laws/:id", func(c *gin.Context) {
		c.Set("lawId", int64(7))
		c.Set("riskLevel", "High")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/laws/7", nil)
	req.Header.Set("X-Request-Id", "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log, got %d", len(entries))
	}
	payload := entries[0].ContextMap()
	for _, key := range []string{"request_id", "method", "route", "path", "status", "duration_ms", "law_id", "risk_level"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-1" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["route"] != "/laws/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["law_id"] != int64(7) {
		t.Fatalf("unexpected law_id: %v", payload["law_id"])
	}
}

func TestLoggingSkipsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observeLogs(t)

	router := gin.New()
	router.Use(Logging())
	router.OPTIONS("/analyze", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodOptions, "/analyze", nil))
	if n := logs.FilterMessage("request.complete").Len(); n != 0 {
		t.Fatalf("expected no request log for OPTIONS, got %d", n)
	}
}
