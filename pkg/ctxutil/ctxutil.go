// Package ctxutil carries request-scoped values through context.Context.
package ctxutil

import (
	"context"
	"log/slog"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns "" when ctx carries no request id.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logger tags base with the request id from ctx, if any.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := RequestIDFromCtx(ctx); id != "" {
		return base.With(slog.String("request_id", id))
	}
	return base
}
