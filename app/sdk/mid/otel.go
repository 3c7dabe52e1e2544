package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Otel binds the tracer to the request and opens the app level span that
// every business span hangs from.
func Otel(tracer trace.Tracer) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = otel.InjectTracing(ctx, tracer)

			ctx, span := otel.AddSpan(ctx, "app.request",
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.Pattern),
			)
			defer span.End()

			return next(ctx, r)
		}

		return h
	}

	return m
}
