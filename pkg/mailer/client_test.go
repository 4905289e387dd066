package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harborline/storefront-backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(config.NewsletterConfig{
		ProviderURL:    server.URL,
		APIKey:         "key-123",
		RequestTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestSubscribeDecodesProviderResult(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ok":false,"error":"Invalid email"}`))
	})

	result, err := client.Subscribe(context.Background(), "nope")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if result.OK || result.Error != "Invalid email" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSubscribeSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	result, err := client.Subscribe(context.Background(), "hi@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected ok result, got %+v", result)
	}
}

func TestSubscribeNonJSONBodyIsPlainFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	result, err := client.Subscribe(context.Background(), "hi@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if result.OK || result.Error != "" {
		t.Fatalf("expected bare failure, got %+v", result)
	}
}

func TestNewRequiresProviderURL(t *testing.T) {
	if _, err := New(config.NewsletterConfig{}); err == nil {
		t.Fatalf("expected error for missing provider url")
	}
}
