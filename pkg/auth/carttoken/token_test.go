package carttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/config"
)

func testConfig() config.CartTokenConfig {
	return config.CartTokenConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testConfig()
	cartID := uuid.New()

	signed, err := Mint(cfg, time.Now(), cartID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := Parse(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.CartID != cartID {
		t.Fatalf("expected cart id %s, got %s", cartID, claims.CartID)
	}
}

func TestMintRejectsMissingInputs(t *testing.T) {
	cfg := testConfig()
	if _, err := Mint(config.CartTokenConfig{Issuer: cfg.Issuer, ExpirationMinutes: 1}, time.Now(), uuid.New()); err == nil {
		t.Fatalf("expected error for missing secret")
	}
	if _, err := Mint(cfg, time.Now(), uuid.Nil); err == nil {
		t.Fatalf("expected error for nil cart id")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	signed, err := Mint(cfg, time.Now().Add(-2*time.Hour), uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := Parse(cfg, signed); err == nil {
		t.Fatalf("expected expired token to fail parsing")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testConfig()
	signed, err := Mint(cfg, time.Now(), uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	other := cfg
	other.Issuer = "someone-else"
	if _, err := Parse(other, signed); err == nil {
		t.Fatalf("expected issuer mismatch to fail parsing")
	}
}
