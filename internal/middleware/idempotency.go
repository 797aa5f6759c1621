package middleware

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/josh-kwaku/economy-hud/internal/auth"
	"github.com/josh-kwaku/economy-hud/internal/handler"
	"github.com/josh-kwaku/economy-hud/internal/logging"
)

// CachedResponse is a completed response kept for replay under its idempotency key.
// InFlight marks a key whose first request has not finished yet.
type CachedResponse struct {
	RequestHash  string
	StatusCode   int
	ResponseBody []byte
	InFlight     bool
}

type idempotencyStore interface {
	GetOrSet(key string, resp CachedResponse) (CachedResponse, bool)
	Set(key string, resp CachedResponse)
	Delete(key string)
}

// Idempotency replays the stored response for a repeated Idempotency-Key from
// the same caller. Keys are scoped per caller so two players never collide.
// The key is claimed before the handler runs; a second request arriving while
// the first is still running gets a 409. Server errors and panics release the
// key, so the client may retry them.
func Idempotency(store idempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				handler.RespondAppError(w, handler.ErrMissingIdempotencyKey, nil)
				return
			}

			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidRequest, nil)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			reqHash := computeHash(r.Method, r.URL.Path, body)
			scoped := claims.PlayerID.String() + ":" + key

			cached, found := store.GetOrSet(scoped, CachedResponse{RequestHash: reqHash, InFlight: true})
			if found {
				if cached.RequestHash != reqHash {
					handler.RespondAppError(w, handler.ErrIdempotencyConflict, nil)
					return
				}
				if cached.InFlight {
					handler.RespondAppError(w, handler.ErrIdempotencyInFlight, nil)
					return
				}

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotent-Replayed", "true")
				w.WriteHeader(cached.StatusCode)
				if _, err := w.Write(cached.ResponseBody); err != nil {
					log := logging.FromContext(r.Context())
					log.Error("failed to write idempotent replay", "error", err, "idempotency_key", key)
				}
				return
			}

			stored := false
			defer func() {
				if !stored {
					store.Delete(scoped)
				}
			}()

			rec := &responseRecorder{ResponseWriter: w, body: &bytes.Buffer{}, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.statusCode >= http.StatusInternalServerError {
				return
			}
			store.Set(scoped, CachedResponse{
				RequestHash:  reqHash,
				StatusCode:   rec.statusCode,
				ResponseBody: rec.body.Bytes(),
			})
			stored = true
		})
	}
}

func computeHash(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return fmt.Sprintf("%x", h.Sum(nil))
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
