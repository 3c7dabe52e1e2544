// Package checkapp maintains the app layer api for the health checks.
package checkapp

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

type app struct {
	build string
	log   *logger.Logger
	ready func(ctx context.Context) error
}

func newApp(build string, log *logger.Logger, ready func(ctx context.Context) error) *app {
	return &app{
		build: build,
		log:   log,
		ready: ready,
	}
}

// readiness checks if the database is ready and if not will return a 503
// status. Do not respond by just returning an error because further up in
// the call stack it will interpret that as a non-trusted error.
func (a *app) readiness(ctx context.Context, r *http.Request) web.Encoder {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := a.ready(ctx); err != nil {
		a.log.Info(ctx, "readiness failure", "ERROR", err)
		return errs.Errorf(errs.Unavailable, "database not ready")
	}

	return Status{Status: "ok"}
}

// liveness returns simple status info if the service is alive. If the
// app is deployed to a Kubernetes cluster, it will also return pod, node, and
// namespace details via the Downward API.
func (a *app) liveness(ctx context.Context, r *http.Request) web.Encoder {
	host, err := os.Hostname()
	if err != nil {
		host = "unavailable"
	}

	return Info{
		Status:     "up",
		Build:      a.build,
		Host:       host,
		Name:       os.Getenv("KUBERNETES_NAME"),
		PodIP:      os.Getenv("KUBERNETES_POD_IP"),
		Node:       os.Getenv("KUBERNETES_NODE_NAME"),
		Namespace:  os.Getenv("KUBERNETES_NAMESPACE"),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
}
