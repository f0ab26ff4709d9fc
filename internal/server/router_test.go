package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudfilestore/api/internal/config"
	"github.com/cloudfilestore/api/internal/file"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.CORS.AllowedOrigin = "https://files.example.com"

	return NewRouter(Dependencies{
		Config:      cfg,
		FileService: &file.Service{},
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestCORSHeadersOnResponses(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://files.example.com" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatalf("expected allow-headers to be set")
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/files/list", nil)
	req.Header.Set("Origin", "https://files.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://files.example.com" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
}

func TestProtectedRoutesRequireCredential(t *testing.T) {
	router := newTestRouter(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/files/list"},
		{http.MethodPost, "/v1/files/presign-upload"},
		{http.MethodGet, "/v1/files/presign-download"},
		{http.MethodPost, "/v1/files/record-download"},
		{http.MethodDelete, "/v1/files/00000000-0000-0000-0000-000000000000"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without credential, got %d", route.method, route.path, rr.Code)
		}
	}
}
