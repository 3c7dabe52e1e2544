package web

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey int

const (
	writerKey ctxKey = iota + 1
	tracerKey
)

func setWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey, w)
}

// GetWriter returns the underlying writer for the request.
func GetWriter(ctx context.Context) http.ResponseWriter {
	v, ok := ctx.Value(writerKey).(http.ResponseWriter)
	if !ok {
		return nil
	}

	return v
}

func setTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// GetTracer returns the tracer bound to the request.
func GetTracer(ctx context.Context) trace.Tracer {
	v, ok := ctx.Value(tracerKey).(trace.Tracer)
	if !ok {
		return nil
	}

	return v
}
