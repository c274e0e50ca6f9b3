package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/pkg/auth"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "ooh-agent", ExpirationMinutes: 60}
}

func captureClient(dst *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst = ClientFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	var client string
	handler := Auth(testJWT(), false, nil)(captureClient(&client))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Empty(t, client)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	var client string
	handler := Auth(testJWT(), false, nil)(captureClient(&client))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWT()
	token, err := auth.MintServiceToken(cfg, time.Now().Add(-2*time.Hour), auth.ServiceTokenPayload{Client: "n8n"})
	require.NoError(t, err)

	var client string
	handler := Auth(cfg, false, nil)(captureClient(&client))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := testJWT()
	token, err := auth.MintServiceToken(cfg, time.Now(), auth.ServiceTokenPayload{Client: "n8n"})
	require.NoError(t, err)

	var client string
	handler := Auth(cfg, false, nil)(captureClient(&client))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "n8n", client)
}

func TestAuthDisabledPassesAsLocalClient(t *testing.T) {
	var client string
	handler := Auth(testJWT(), true, nil)(captureClient(&client))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "local", client)
}

func TestAuthAcceptsBareTokenAndRecordsTokenID(t *testing.T) {
	cfg := testJWT()
	token, err := auth.MintServiceToken(cfg, time.Now(), auth.ServiceTokenPayload{Client: "n8n", JTI: "tok-1"})
	require.NoError(t, err)

	var caller Caller
	handler := Auth(cfg, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ = CallerFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, Caller{Client: "n8n", TokenID: "tok-1"}, caller)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  bearer   abc "))
	assert.Equal(t, "abc", bearerToken("abc"))
	assert.Equal(t, "", bearerToken("Bearer "))
	assert.Equal(t, "", bearerToken(""))
}
