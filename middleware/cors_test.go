package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler() http.Handler {
	return EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://staging.example.com")

	req := httptest.NewRequest("GET", "/transactions", nil)
	req.Header.Set("Origin", "https://staging.example.com")
	rec := httptest.NewRecorder()
	corsHandler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://staging.example.com" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}

func TestCORSFallsBackToFirstOrigin(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")

	req := httptest.NewRequest("GET", "/transactions", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	corsHandler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected fallback to first allowed origin, got %q", got)
	}
}

func TestCORSDevelopmentModeEchoesAnyOrigin(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	req := httptest.NewRequest("GET", "/transactions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	corsHandler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected dev mode to echo origin, got %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")

	called := false
	h := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/transactions", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the wrapped handler")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected preflight to carry allow-methods header")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"abc123", ""},
	}
	for _, tt := range tests {
		if got := extractToken(tt.header); got != tt.want {
			t.Errorf("extractToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
