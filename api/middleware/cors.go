package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",            // local dev
	"https://shop.harborline.dev",      // storefront
	"https://storefront-preview.harborline.dev", // preview deployments
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-SF-Cart-Token", "X-SF-Viewer-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-SF-Cart-Token", "X-SF-Viewer-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
