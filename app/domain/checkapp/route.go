package checkapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

// Config contains all the mandatory systems required by handlers. Ready
// reports whether the database answers.
type Config struct {
	Build string
	Log   *logger.Logger
	Ready func(ctx context.Context) error
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Build, cfg.Log, cfg.Ready)

	app.HandlerFuncNoMid(http.MethodGet, version, "/readiness", api.readiness)
	app.HandlerFuncNoMid(http.MethodGet, version, "/liveness", api.liveness)
}
