package copilotapp

import (
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/actions"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	CopilotBus *copilotbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	ruleUse := mid.AuthorizeAction(cfg.Auth, resource.Copilot, actions.Use)

	api := newApp(cfg.CopilotBus)

	app.HandlerFunc(http.MethodPost, version, "/copilot/messages", api.processMessage, authen, ruleUse)
	app.HandlerFunc(http.MethodGet, version, "/copilot/tools", api.tools, authen, ruleUse)
}
