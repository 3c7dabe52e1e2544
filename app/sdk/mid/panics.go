package mid

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/metrics"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

// Panics turns a panicking handler into an internal error. The stack goes to
// the log, never to the client.
func Panics(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) (resp web.Encoder) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				metrics.AddPanics(ctx)
				log.Error(ctx, "panic recovered", "method", r.Method, "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))

				resp = errs.Errorf(errs.InternalOnlyLog, "panic: %v", rec)
			}()

			return next(ctx, r)
		}

		return h
	}

	return m
}
