package httpapi

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
)

// Recovery converts a handler panic into the taxonomy's generic 500. The
// panic value and stack go to the log; the response body stays as opaque as
// any other internal failure.
func Recovery(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				writeAppError(w, r, apperr.Internal())
			}()
			next.ServeHTTP(w, r)
		})
	}
}
