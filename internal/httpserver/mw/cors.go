package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser extension to call the API cross-origin.
// Extension pages have chrome-extension:// / moz-extension:// origins,
// so the origin list cannot be pinned to a fixed host.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
