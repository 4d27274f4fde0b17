// Package middleware provides Connect interceptors shared by every service.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC with the procedure, outcome code
// and duration. A nil logger uses slog.Default at call time.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			l := logger
			if l == nil {
				l = slog.Default()
			}
			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("code", codeLabel(err)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			msg := "RPC ok"
			if err != nil {
				msg = "RPC error"
				attrs = append(attrs, slog.String("error", errorMessage(err)))
			}
			l.LogAttrs(ctx, rpcLogLevel(err), msg, attrs...)
			return resp, err
		}
	}
}

// rpcLogLevel keeps caller mistakes out of the error log: only failures the
// server is responsible for are logged at Error.
func rpcLogLevel(err error) slog.Level {
	if err == nil {
		return slog.LevelInfo
	}
	switch connect.CodeOf(err) {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func errorMessage(err error) string {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return err.Error()
}
