package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

const (
	requestIDHeader   = "X-Request-Id"
	executionIDHeader = "X-N8N-Execution-Id"
	maxRequestIDLen   = 128
)

// RequestID propagates the caller's request id. Workflow executions that only
// send their execution id are correlated by it; otherwise a uuid is minted.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := incomingRequestID(r)
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
				if exec := strings.TrimSpace(r.Header.Get(executionIDHeader)); exec != "" {
					ctx = logg.WithField(ctx, "execution_id", exec)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func incomingRequestID(r *http.Request) string {
	for _, header := range []string{requestIDHeader, executionIDHeader} {
		if id := strings.TrimSpace(r.Header.Get(header)); id != "" && len(id) <= maxRequestIDLen {
			return id
		}
	}
	return uuid.NewString()
}
