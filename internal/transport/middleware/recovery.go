package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/querycloud/pkg/ctxutil"
)

var httpPanics = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "querycloud",
	Subsystem: "http",
	Name:      "panics_total",
	Help:      "Handler panics recovered",
})

// Recovery turns a handler panic into a logged JSON 500. Nothing is written
// when the handler already started a response or hijacked the connection.
// http.ErrAbortHandler is re-raised so net/http can abort the response.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				httpPanics.Inc()
				ctxutil.Logger(r.Context(), logger).ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				if sw.wroteHeader || sw.hijacked {
					return
				}
				sw.Header().Set("Content-Type", "application/json")
				sw.WriteHeader(http.StatusInternalServerError)
				_, _ = sw.Write([]byte(`{"error":"internal server error"}` + "\n"))
			}()
			next.ServeHTTP(sw, r)
		})
	}
}
