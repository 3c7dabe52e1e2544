// Package all binds all the routes into the specified app.
package all

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/wertvoll-dispo/app/domain/authapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/domain/checkapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/domain/copilotapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/domain/customerapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/domain/dashboardapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mux"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus/stores/customerdb"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/dashboardbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus/stores/employeecache"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus/stores/employeedb"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus/stores/invoicedb"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus/stores/jobdb"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus/stores/offerdb"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/tenantbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouteAdder interface.
func (add) Add(app *web.App, cfg mux.Config) error {

	// Construct the business domain packages we need here so we are using the
	// sames instances for the different set of domain apis.
	employeeBus := employeebus.NewCore(cfg.Log, employeecache.NewStore(cfg.Log, employeedb.NewStore(cfg.Log, cfg.DB), cfg.AuthConfig.ActorTTL))
	customerBus := customerbus.NewCore(cfg.Log, customerdb.NewStore(cfg.Log, cfg.DB))
	offerBus := offerbus.NewCore(cfg.Log, offerdb.NewStore(cfg.Log, cfg.DB))
	jobBus := jobbus.NewCore(cfg.Log, jobdb.NewStore(cfg.Log, cfg.DB))
	invoiceBus := invoicebus.NewCore(cfg.Log, invoicedb.NewStore(cfg.Log, cfg.DB))
	tenantBus := tenantbus.NewCore(cfg.Log, tenantdb.NewStore(cfg.Log, cfg.DB))

	dashboardBus := dashboardbus.NewCore(dashboardbus.Config{
		Log:      cfg.Log,
		Leads:    customerBus,
		Offers:   offerBus,
		Invoices: invoiceBus,
		Jobs:     jobBus,
	})

	copilotBus := copilotbus.NewCore(copilotbus.Config{
		Log:        cfg.Log,
		Recognizer: cfg.CopilotConfig.Recognizer,
		Actors:     employeeBus,
		Customers:  customerBus,
		Offers:     offerBus,
		Persona:    cfg.CopilotConfig.Persona,
		Timeout:    cfg.CopilotConfig.Timeout,
	})

	authClient, err := auth.New(auth.Config{
		Log:       cfg.Log,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Actors:    employeeBus,
		Issuer:    cfg.AuthConfig.Issuer,
	})
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		Ready: func(ctx context.Context) error {
			return sqldb.StatusCheck(ctx, cfg.DB)
		},
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		Employees: employeeBus,
		Tenants:   tenantBus,
	})

	customerapp.Routes(app, customerapp.Config{
		Log:         cfg.Log,
		Auth:        authClient,
		DB:          sqldb.NewBeginner(cfg.DB),
		CustomerBus: customerBus,
		OfferBus:    offerBus,
	})

	dashboardapp.Routes(app, dashboardapp.Config{
		Auth:         authClient,
		DashboardBus: dashboardBus,
	})

	copilotapp.Routes(app, copilotapp.Config{
		Auth:       authClient,
		CopilotBus: copilotBus,
	})

	return nil
}
