package dashboardapp

import (
	"net/http"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/dashboardbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/actions"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
)

// Config contains all the mandatory systems required by handlers. Now is
// optional and defaults to time.Now.
type Config struct {
	Auth         *auth.Auth
	DashboardBus *dashboardbus.Core
	Now          func() time.Time
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	canRead := mid.AuthorizeAction(cfg.Auth, resource.Dashboard, actions.Get)

	api := newApp(cfg.DashboardBus, cfg.Now)

	app.HandlerFunc(http.MethodGet, version, "/dashboard/stats", api.stats, authen, canRead)
	app.HandlerFunc(http.MethodGet, version, "/dashboard/calendar", api.calendar, authen, canRead)
}
