package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/ooh-agent-backend/pkg/errors"
	pkgredis "github.com/angelmondragon/ooh-agent-backend/pkg/redis"
)

type fakeStore struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func (f *fakeStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = pkgredis.PendingMarker
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeStore) Load(_ context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Save(_ context.Context, key, record string, ttl time.Duration) error {
	f.data[key] = record
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Release(_ context.Context, key string) error {
	delete(f.data, key)
	delete(f.ttls, key)
	return nil
}

const stagingPath = "/api/v1/proposals/staged/by-codes"

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   time.Duration
		ok     bool
	}{
		{"staging", http.MethodPost, stagingPath, defaultIdempotencyTTL, true},
		{"complete", http.MethodPost, "/api/v1/proposals/complete", completionIdempotencyTTL, true},
		{"blocked dates", http.MethodPost, "/api/v1/inventory/5b1c/blocked-dates", defaultIdempotencyTTL, true},
		{"audit", http.MethodPost, "/api/v1/audit/email-sent", defaultIdempotencyTTL, true},
		{"create partner", http.MethodPost, "/api/v1/partners", defaultIdempotencyTTL, true},
		{"read latest", http.MethodGet, "/api/v1/proposals/staged/rich/latest", 0, false},
		{"quote", http.MethodPost, "/api/v1/pricing/quote", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ttl, ok := routeTTL(tt.method, tt.path)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ttl)
			}
		})
	}
}

func TestIdempotencyMiddlewarePassesWithoutKey(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{"codes":["GFG001"]}`)))
		assert.Equal(t, http.StatusCreated, resp.Code)
	}
	assert.Equal(t, 2, calls)
	assert.Empty(t, store.data)
}

func TestIdempotencyMiddlewareReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	req := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{"codes":["GFG001"]}`))
	req.Header.Set("Idempotency-Key", "abc")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	require.Equal(t, http.StatusAccepted, resp.Code)

	replay := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{"codes":["GFG001"]}`))
	replay.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	mw(handler).ServeHTTP(rec, replay)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, "true", rec.Header().Get("Idempotent-Replay"))
	assert.Equal(t, 1, calls)
	for _, ttl := range store.ttls {
		assert.Equal(t, defaultIdempotencyTTL, ttl)
	}
}

func TestIdempotencyInFlightKeyConflicts(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "busy")
	store.data[store.IdempotencyKey(buildScope(req), "busy")] = pkgredis.PendingMarker

	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Zero(t, calls)
}

func TestIdempotencyServerErrorReleasesKey(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	status := http.StatusServiceUnavailable
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/proposals/complete", strings.NewReader(`{"pdfUrl":"https://cdn/p.pdf"}`))
		req.Header.Set("Idempotency-Key", "retry-me")
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		return resp.Code
	}

	assert.Equal(t, http.StatusServiceUnavailable, send())
	assert.Empty(t, store.data)

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, 2, calls)
	for _, ttl := range store.ttls {
		assert.Equal(t, completionIdempotencyTTL, ttl)
	}
}

func TestIdempotencyScopeIncludesClient(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for _, client := range []string{"n8n", "renderer"} {
		req := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{}`))
		req = req.WithContext(WithClient(req.Context(), client))
		req.Header.Set("Idempotency-Key", "same")
		mw(handler).ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
	assert.Len(t, store.data, 2)
}

func TestIdempotencyMiddlewareDetectsBodyChange(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{"codes":["GFG001"]}`))
	req.Header.Set("Idempotency-Key", "xyz")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	replay := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{"codes":["GFG002"]}`))
	replay.Header.Set("Idempotency-Key", "xyz")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, replay)

	assert.Equal(t, http.StatusConflict, resp.Code)
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, string(pkgerrors.CodeIdempotency), payload.Error.Code)
}

func TestIdempotencyMiddlewareWithoutStore(t *testing.T) {
	mw := Idempotency(nil, nil)
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	req := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyPanicReleasesKey(t *testing.T) {
	store := newFakeStore()
	mw := Idempotency(store, nil)
	fail := true
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			panic("boom")
		}
		w.WriteHeader(http.StatusCreated)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, stagingPath, strings.NewReader(`{"codes":["GFG001"]}`))
		req.Header.Set("Idempotency-Key", "crash")
		resp := httptest.NewRecorder()
		mw(handler).ServeHTTP(resp, req)
		return resp
	}

	assert.PanicsWithValue(t, "boom", func() { send() })
	assert.Empty(t, store.data)

	fail = false
	assert.Equal(t, http.StatusCreated, send().Code)
}
