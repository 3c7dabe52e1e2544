// Package customerapp maintains the app layer api for the customer domain.
package customerapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/query"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/page"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
)

type app struct {
	customerBus *customerbus.Core
	offerBus    *offerbus.Core
}

func newApp(customerBus *customerbus.Core, offerBus *offerbus.Core) *app {
	return &app{
		customerBus: customerBus,
		offerBus:    offerBus,
	}
}

// create adds a new customer to the caller's company.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewCustomer
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nc, err := toBusNewCustomer(tenantID, req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	cus, err := a.customerBus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, customerbus.ErrInvalid) {
			return errs.New(errs.InvalidArgument, customerbus.ErrInvalid)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: %s", err)
	}

	return toAppCustomer(cus)
}

// update changes the fields present in the request.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateCustomer
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uc, err := toBusUpdateCustomer(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, err := a.txBus(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "transaction: %s", err)
	}

	cus, appErr := a.load(ctx, bus, r)
	if appErr != nil {
		return appErr
	}

	updCus, err := bus.Update(ctx, cus, uc)
	if err != nil {
		if errors.Is(err, customerbus.ErrInvalid) {
			return errs.New(errs.InvalidArgument, customerbus.ErrInvalid)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: customerID[%s]: %s", cus.ID, err)
	}

	return toAppCustomer(updCus)
}

// delete removes the customer.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	bus, err := a.txBus(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "transaction: %s", err)
	}

	cus, appErr := a.load(ctx, bus, r)
	if appErr != nil {
		return appErr
	}

	if err := bus.Delete(ctx, cus); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete: customerID[%s]: %s", cus.ID, err)
	}

	return nil
}

// queryByID returns the customer with its offers.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	cus, appErr := a.load(ctx, a.customerBus, r)
	if appErr != nil {
		return appErr
	}

	offers, err := a.offerBus.QueryByCustomerID(ctx, cus.TenantID, cus.ID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query offers: customerID[%s]: %s", cus.ID, err)
	}

	return Detail{
		Customer: toAppCustomer(cus),
		Offers:   toAppOffers(offers),
	}
}

// query returns one page of customers, newest first.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	values := r.URL.Query()

	pg, err := page.Parse(values.Get("limit"), values.Get("cursor"))
	if err != nil {
		return errs.NewFieldErrors("limit", err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	res, err := a.customerBus.QueryPage(ctx, tenantID, pg)
	if err != nil {
		if errors.Is(err, customerbus.ErrInvalidCursor) {
			return errs.NewFieldErrors("cursor", customerbus.ErrInvalidCursor)
		}
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	return query.NewResult(res, toAppSummary)
}

// =============================================================================

func (a *app) txBus(ctx context.Context) (*customerbus.Core, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return nil, err
	}

	return a.customerBus.NewWithTx(tx)
}

func (a *app) load(ctx context.Context, bus *customerbus.Core, r *http.Request) (customerbus.Customer, *errs.Error) {
	customerID, err := uuid.Parse(web.Param(r, "customer_id"))
	if err != nil {
		return customerbus.Customer{}, errs.NewFieldErrors("customer_id", err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return customerbus.Customer{}, errs.New(errs.Unauthenticated, err)
	}

	cus, err := bus.QueryByID(ctx, tenantID, customerID)
	if err != nil {
		if errors.Is(err, customerbus.ErrNotFound) {
			return customerbus.Customer{}, errs.New(errs.NotFound, customerbus.ErrNotFound)
		}
		return customerbus.Customer{}, errs.Errorf(errs.Internal, "query: customerID[%s]: %s", customerID, err)
	}

	return cus, nil
}

