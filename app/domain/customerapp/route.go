package customerapp

import (
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *logger.Logger
	Auth        *auth.Auth
	DB          sqldb.Beginner
	CustomerBus *customerbus.Core
	OfferBus    *offerbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	ruleCustomer := mid.Authorize(cfg.Auth, resource.Customer)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.DB)

	api := newApp(cfg.CustomerBus, cfg.OfferBus)

	app.HandlerFunc(http.MethodGet, version, "/customers", api.query, authen, ruleCustomer)
	app.HandlerFunc(http.MethodGet, version, "/customers/{customer_id}", api.queryByID, authen, ruleCustomer)
	app.HandlerFunc(http.MethodPost, version, "/customers", api.create, authen, ruleCustomer)
	app.HandlerFunc(http.MethodPut, version, "/customers/{customer_id}", api.update, authen, ruleCustomer, transaction)
	app.HandlerFunc(http.MethodDelete, version, "/customers/{customer_id}", api.delete, authen, ruleCustomer, transaction)
}
