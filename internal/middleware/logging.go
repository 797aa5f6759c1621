package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/josh-kwaku/economy-hud/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging installs a request-scoped logger and logs one line per request.
// Health and metrics scrapes are not logged.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		attrs := []any{"request_id", TraceIDFromContext(r.Context())}
		if id := r.PathValue("id"); id != "" {
			attrs = append(attrs, "player_id", id)
		}

		logger := slog.Default().With(attrs...)
		ctx := logging.WithLogger(r.Context(), logger)
		r = r.WithContext(ctx)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
