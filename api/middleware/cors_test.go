package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
)

func preflight(cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/inventory", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestCORSAllowsConfiguredOriginWithCredentials(t *testing.T) {
	resp := preflight(config.CORSConfig{AllowedOrigins: []string{"http://localhost:5678"}, MaxAgeSeconds: 300}, "http://localhost:5678")
	assert.Equal(t, "http://localhost:5678", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "300", resp.Header().Get("Access-Control-Max-Age"))
}

func TestCORSWildcardDropsCredentials(t *testing.T) {
	resp := preflight(config.CORSConfig{AllowedOrigins: []string{"*"}}, "https://preview.example.com")
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	resp := preflight(config.CORSConfig{AllowedOrigins: []string{"http://localhost:5678"}}, "https://evil.example.com")
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}
