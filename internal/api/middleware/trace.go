package middleware

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ruslex/ruslex-api/internal/api/shared"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
)

// TraceMiddleware puts a trace ID and a trace-scoped logger into the
// request context. Services retrieve the logger with
// logger.FromContextOrDefault, so every log line of a request carries the
// same trace_id as its error response.
//
// When chi's RequestID middleware runs first its ID is reused as the
// trace ID; otherwise a random one is generated.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
			ctx = shared.SetTraceIDValue(ctx, reqID)
		} else {
			ctx = shared.SetTraceID(ctx)
		}

		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
