package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/nearbuy-market/storefront-gateway/pkg/config"
)

// CORS returns middleware that applies the storefront's allowed origin policy.
// The browser talks to this gateway directly, so the session cookie requires
// credentialed requests.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
