package middleware

import (
	"net/http"

	"github.com/harborline/storefront-backend/api/responses"
	"github.com/harborline/storefront-backend/pkg/auth/carttoken"
	"github.com/harborline/storefront-backend/pkg/config"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

const cartTokenHeader = "X-SF-Cart-Token"

// CartContext resolves the cart token header into a cart id on the request
// context. Requests without a valid token are rejected; cart creation is the
// only cart surface that does not pass through here.
func CartContext(cfg config.CartTokenConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := r.Header.Get(cartTokenHeader)
			if raw == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart token is required"))
				return
			}

			claims, err := carttoken.Parse(cfg, raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid cart token"))
				return
			}

			ctx = WithCartID(ctx, claims.CartID)
			if logg != nil {
				ctx = logg.WithCartID(ctx, claims.CartID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
