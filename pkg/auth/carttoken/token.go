package carttoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/config"
)

var signingMethod = jwt.SigningMethodHS256

// Claims bind a storefront client to its cart.
type Claims struct {
	CartID uuid.UUID `json:"cart_id"`
	jwt.RegisteredClaims
}

// Mint issues a signed token for the provided cart using the configured TTL.
func Mint(cfg config.CartTokenConfig, now time.Time, cartID uuid.UUID) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("cart token secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("cart token issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("cart token expiration minutes must be positive")
	}
	if cartID == uuid.Nil {
		return "", fmt.Errorf("cart id is required")
	}

	claims := Claims{
		CartID: cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing cart token: %w", err)
	}
	return signed, nil
}

// Parse validates the token string and returns the typed claims.
func Parse(cfg config.CartTokenConfig, tokenString string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("cart token secret is required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.CartID == uuid.Nil {
		return nil, fmt.Errorf("cart token missing cart id")
	}

	return claims, nil
}
