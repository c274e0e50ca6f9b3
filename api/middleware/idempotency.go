package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/api/responses"
	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/ooh-agent-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayHeader      = "Idempotent-Replay"

	defaultIdempotencyTTL    = 24 * time.Hour
	completionIdempotencyTTL = 7 * 24 * time.Hour
	inFlightTTL              = 2 * time.Minute
)

// idempotentWrite names a write route whose responses are replayed for a
// repeated Idempotency-Key. Paths are matched on r.URL.Path because the
// middleware runs before chi resolves the route.
type idempotentWrite struct {
	prefix string
	suffix string
	exact  bool
	ttl    time.Duration
}

func (w idempotentWrite) matches(path string) bool {
	if w.exact {
		return path == w.prefix
	}
	return strings.HasPrefix(path, w.prefix) && strings.HasSuffix(path, w.suffix)
}

var idempotentWrites = []idempotentWrite{
	{prefix: "/api/v1/proposals/complete", exact: true, ttl: completionIdempotencyTTL},
	{prefix: "/api/v1/proposals/staged/", ttl: defaultIdempotencyTTL},
	{prefix: "/api/v1/partners", exact: true, ttl: defaultIdempotencyTTL},
	{prefix: "/api/v1/inventory/", suffix: "/blocked-dates", ttl: defaultIdempotencyTTL},
	{prefix: "/api/v1/audit", ttl: defaultIdempotencyTTL},
}

type idempotencyRecord struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        string `json:"body"`
	RequestHash string `json:"request_hash"`
}

// Idempotency replays the first response of a write for a repeated
// Idempotency-Key from the same client. The header is optional. A request
// still running holds the key; a 5xx releases it so the workflow can retry.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, ok := routeTTL(r.Method, r.URL.Path)
			idemKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if !ok || store == nil || idemKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "no se pudo leer la solicitud"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			requestHash := hashBody(body)
			key := store.IdempotencyKey(buildScope(r), idemKey)

			stored, found, err := store.Load(ctx, key)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verificar idempotencia"))
				return
			}
			if found {
				replay(ctx, logg, w, stored, requestHash)
				return
			}

			reserved, err := store.Reserve(ctx, key, inFlightTTL)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reservar idempotencia"))
				return
			}
			if !reserved {
				responses.WriteError(ctx, logg, w, inFlightError())
				return
			}

			// Persist even when the caller hung up mid-response.
			persistCtx := context.WithoutCancel(ctx)

			// A panicking handler must not hold the key for inFlightTTL.
			served := false
			defer func() {
				if served {
					return
				}
				if err := store.Release(persistCtx, key); err != nil {
					logError(ctx, logg, "idempotency.release_failed", err)
				}
			}()

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)
			served = true

			status := capture.statusOrDefault()
			if status >= http.StatusInternalServerError {
				if err := store.Release(persistCtx, key); err != nil {
					logError(ctx, logg, "idempotency.release_failed", err)
				}
				return
			}

			payload, err := json.Marshal(idempotencyRecord{
				Status:      status,
				ContentType: capture.Header().Get("Content-Type"),
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
				RequestHash: requestHash,
			})
			if err != nil {
				logError(ctx, logg, "idempotency.marshal_failed", err)
				return
			}
			if err := store.Save(persistCtx, key, string(payload), ttl); err != nil {
				logError(ctx, logg, "idempotency.persist_failed", err)
			}
		})
	}
}

func replay(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, stored, requestHash string) {
	if stored == pkgredis.PendingMarker {
		responses.WriteError(ctx, logg, w, inFlightError())
		return
	}
	var record idempotencyRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "registro de idempotencia corrupto"))
		return
	}
	if record.RequestHash != requestHash {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "Idempotency-Key reutilizada con un cuerpo distinto"))
		return
	}
	body, err := base64.StdEncoding.DecodeString(record.Body)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "registro de idempotencia corrupto"))
		return
	}
	if record.ContentType != "" {
		w.Header().Set("Content-Type", record.ContentType)
	}
	w.Header().Set(replayHeader, "true")
	w.WriteHeader(record.Status)
	_, _ = w.Write(body)
}

func inFlightError() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "ya hay una solicitud en curso con esta Idempotency-Key")
}

// buildScope keeps keys from different clients and routes apart.
func buildScope(r *http.Request) string {
	return strings.Join([]string{ClientFromContext(r.Context()), r.Method, r.URL.Path}, "|")
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func routeTTL(method, path string) (time.Duration, bool) {
	if method != http.MethodPost || path == "" {
		return 0, false
	}
	for _, write := range idempotentWrites {
		if write.matches(path) {
			return write.ttl, true
		}
	}
	return 0, false
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) statusOrDefault() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func logError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil || err == nil {
		return
	}
	logg.Error(ctx, msg, err)
}
