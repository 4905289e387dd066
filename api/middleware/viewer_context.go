package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/logger"
)

const viewerIDHeader = "X-SF-Viewer-Id"

// ViewerContext resolves the client's viewer identity header. Clients that
// have not been issued one yet get a fresh id echoed back in the response so
// subsequent requests stay on the same session.
func ViewerContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewerID := strings.TrimSpace(r.Header.Get(viewerIDHeader))
			if viewerID == "" {
				viewerID = uuid.NewString()
			}
			w.Header().Set(viewerIDHeader, viewerID)

			ctx := WithViewerID(r.Context(), viewerID)
			if logg != nil {
				ctx = logg.WithViewerID(ctx, viewerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
