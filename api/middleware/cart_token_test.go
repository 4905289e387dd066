package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/auth/carttoken"
	"github.com/harborline/storefront-backend/pkg/config"
)

func cartTokenTestConfig() config.CartTokenConfig {
	return config.CartTokenConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
	}
}

func TestCartContextResolvesToken(t *testing.T) {
	cfg := cartTokenTestConfig()
	cartID := uuid.New()
	token, err := carttoken.Mint(cfg, time.Now(), cartID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seen uuid.UUID
	handler := CartContext(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-SF-Cart-Token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen != cartID {
		t.Fatalf("context cart id = %s, want %s", seen, cartID)
	}
}

func TestCartContextRejectsMissingAndInvalidTokens(t *testing.T) {
	cfg := cartTokenTestConfig()
	handler := CartContext(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a valid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should be 401, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-SF-Cart-Token", "not-a-jwt")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token should be 401, got %d", rec.Code)
	}
}

func TestViewerContextIssuesAndEchoesID(t *testing.T) {
	var seen string
	handler := ViewerContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ViewerIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/viewer/open", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("viewer id should be generated when absent")
	}
	if rec.Header().Get("X-SF-Viewer-Id") != seen {
		t.Fatal("generated viewer id must be echoed in the response header")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/viewer/next", nil)
	req.Header.Set("X-SF-Viewer-Id", "viewer-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "viewer-42" {
		t.Fatalf("existing viewer id should pass through, got %s", seen)
	}
}
