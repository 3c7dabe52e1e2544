package authapp

import (
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	Employees EmployeeQuerier
	Tenants   TenantQuerier
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.Auth, cfg.Employees, cfg.Tenants)

	app.HandlerFunc(http.MethodGet, version, "/auth/me", api.me, authen)
}
