package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/josh-kwaku/economy-hud/internal/handler"
	"github.com/josh-kwaku/economy-hud/internal/logging"
)

// Recovery turns a handler panic into a 500 envelope. Wallet listeners recover
// on their own; this catches panics in handlers and middleware.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logging.FromContext(r.Context()).Error("panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", TraceIDFromContext(r.Context()),
					"stack", string(debug.Stack()),
				)
				handler.RespondAppError(w, handler.ErrInternalError, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
