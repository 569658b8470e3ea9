package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/okosach/bankd/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
)

// IdempotencyMiddleware replays cached responses for repeated mutating
// requests carrying the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only mutating requests are deduplicated.
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		exists, cachedResponse, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists {
			if len(cachedResponse) > 0 {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Replay", "true")
				w.Write(cachedResponse)
				return
			}

			// The key is held by an in-flight request. The first request
			// finishes and caches its response; this duplicate must not run
			// the operation a second time in parallel.
			http.Error(w, "request with this idempotency key is already in progress", http.StatusConflict)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Successful responses are cached for replay. Failed ones release the
		// key so the client can retry.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			if err := m.store.Update(r.Context(), key, recorder.body.Bytes(), idempotencyTTL); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotent response")
			}
			return
		}

		if err := m.store.Release(r.Context(), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
