package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the listed origins; "*" allows any origin. Preflight requests
// are answered here and never reach the router.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Locale", "X-Request-ID", "Accept-Language"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         600,
	})
	return c.Handler
}
