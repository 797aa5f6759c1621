package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	traceIDHeader   = "X-Request-ID"
	maxTraceIDBytes = 128
)

type traceIDKey struct{}

// Tracing propagates the caller's X-Request-ID or mints one, and echoes it back.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = uuid.New().String()
		}

		w.Header().Set(traceIDHeader, traceID)
		ctx := context.WithValue(r.Context(), traceIDKey{}, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDBytes {
		return false
	}
	for _, c := range id {
		if c < '!' || c > '~' {
			return false
		}
	}
	return true
}
