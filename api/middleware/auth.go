package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	pkgAuth "github.com/angelmondragon/ooh-agent-backend/pkg/auth"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

const localClient = "local"

// bearerToken accepts "Bearer <jwt>" in any casing, or a bare token as sent
// by n8n's header-auth credential.
func bearerToken(header string) string {
	raw := strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(raw, "bearer") {
		return ""
	}
	return raw
}

// Auth requires a service token. With disabled set, every request runs as
// the local caller, which is how local n8n instances talk to a dev API.
func Auth(cfg config.JWTConfig, disabled bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if disabled {
				next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), Caller{Client: localClient, Local: true})))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciales ausentes"))
				return
			}

			claims, err := pkgAuth.ParseServiceToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "token inválido"))
				return
			}

			ctx := WithCaller(r.Context(), Caller{Client: claims.Client, TokenID: claims.ID})
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"client": claims.Client, "token_id": claims.ID})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
