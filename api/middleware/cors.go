package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
)

// CORS lets the browser-side tools (the n8n editor, the proposal preview)
// call the API. Only the methods the router serves are advertised.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			idempotencyHeader, requestIDHeader, executionIDHeader,
		},
		ExposedHeaders:   []string{requestIDHeader, replayHeader},
		AllowCredentials: !cfg.AllowsAnyOrigin(),
		MaxAge:           cfg.MaxAgeSeconds,
	}).Handler
}
