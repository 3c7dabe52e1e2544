// Package customerbus provides business access to customer domain.
package customerbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/page"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound      = errors.New("customer not found")
	ErrInvalid       = errors.New("customer is invalid")
	ErrInvalidCursor = errors.New("invalid cursor")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Every read is scoped to a tenant.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cus Customer) error
	Update(ctx context.Context, cus Customer) error
	Delete(ctx context.Context, cus Customer) error
	QueryByID(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID) (Customer, error)
	QueryByNameFragment(ctx context.Context, tenantID uuid.UUID, fragment string) ([]Customer, error)
	CountLeads(ctx context.Context, tenantID uuid.UUID) (int, error)
	QueryPage(ctx context.Context, tenantID uuid.UUID, after *Anchor, limit int) ([]Summary, error)
}

// Core manages the set of APIs for customer access.
type Core struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

// NewCore constructs a customer core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
		now:    time.Now,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	nc := NewCore(c.log, storer)
	nc.now = c.now

	return nc, nil
}

// Create adds a new customer to the tenant. A blank name, email or address
// is ErrInvalid, as is any row the store rejects.
func (c *Core) Create(ctx context.Context, nc NewCustomer) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.create")
	defer span.End()

	typ := nc.Type
	if typ == (customertype.CustomerType{}) {
		typ = customertype.Default
	}

	now := c.now().UTC()

	cus := Customer{
		ID:        uuid.New(),
		TenantID:  nc.TenantID,
		Name:      strings.TrimSpace(nc.Name),
		Email:     strings.TrimSpace(nc.Email),
		Address:   strings.TrimSpace(nc.Address),
		Phone:     nc.Phone,
		Type:      typ,
		Sqm:       nc.Sqm,
		Cbm:       nc.Cbm,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validate(cus); err != nil {
		return Customer{}, fmt.Errorf("create: %w", err)
	}

	if err := c.storer.Create(ctx, cus); err != nil {
		return Customer{}, fmt.Errorf("create: %w", err)
	}

	return cus, nil
}

// Update modifies information about a customer.
func (c *Core) Update(ctx context.Context, cus Customer, uc UpdateCustomer) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.update")
	defer span.End()

	if uc.Name != nil {
		cus.Name = strings.TrimSpace(*uc.Name)
	}

	if uc.Email != nil {
		cus.Email = strings.TrimSpace(*uc.Email)
	}

	if uc.Address != nil {
		cus.Address = strings.TrimSpace(*uc.Address)
	}

	if uc.Phone != nil {
		cus.Phone = *uc.Phone
	}

	if uc.Type != nil {
		cus.Type = *uc.Type
	}

	if uc.Sqm != nil {
		cus.Sqm = *uc.Sqm
	}

	if uc.Cbm != nil {
		cus.Cbm = *uc.Cbm
	}

	cus.UpdatedAt = c.now().UTC()

	if err := validate(cus); err != nil {
		return Customer{}, fmt.Errorf("update: %w", err)
	}

	if err := c.storer.Update(ctx, cus); err != nil {
		return Customer{}, fmt.Errorf("update: %w", err)
	}

	return cus, nil
}

// Delete removes the specified customer together with its offers.
func (c *Core) Delete(ctx context.Context, cus Customer) error {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, cus); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the customer by the specified ID within the tenant.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.querybyid")
	defer span.End()

	cus, err := c.storer.QueryByID(ctx, tenantID, customerID)
	if err != nil {
		return Customer{}, fmt.Errorf("query: customerID[%s]: %w", customerID, err)
	}

	return cus, nil
}

// QueryByNameFragment returns the tenant's customers whose name contains the
// fragment, ignoring case, oldest first. An empty fragment matches nothing.
func (c *Core) QueryByNameFragment(ctx context.Context, tenantID uuid.UUID, fragment string) ([]Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.querybynamefragment")
	defer span.End()

	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, nil
	}

	customers, err := c.storer.QueryByNameFragment(ctx, tenantID, fragment)
	if err != nil {
		return nil, fmt.Errorf("query: fragment[%s]: %w", fragment, err)
	}

	return customers, nil
}

// CountLeads returns the number of the tenant's customers without any offer.
func (c *Core) CountLeads(ctx context.Context, tenantID uuid.UUID) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.countleads")
	defer span.End()

	n, err := c.storer.CountLeads(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("countleads: %w", err)
	}

	return n, nil
}

// QueryPage returns one page of the tenant's customers, newest first. The
// page cursor is the ID of the last customer of the previous page.
func (c *Core) QueryPage(ctx context.Context, tenantID uuid.UUID, pg page.Page) (page.Result[Summary], error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.querypage")
	defer span.End()

	var after *Anchor
	if pg.Cursor() != "" {
		id, err := uuid.Parse(pg.Cursor())
		if err != nil {
			return page.Result[Summary]{}, fmt.Errorf("querypage: %w", ErrInvalidCursor)
		}

		cus, err := c.storer.QueryByID(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return page.Result[Summary]{}, fmt.Errorf("querypage: %w", ErrInvalidCursor)
			}
			return page.Result[Summary]{}, fmt.Errorf("querypage: anchor: %w", err)
		}

		after = &Anchor{CreatedAt: cus.CreatedAt, ID: cus.ID}
	}

	rows, err := c.storer.QueryPage(ctx, tenantID, after, pg.Probe())
	if err != nil {
		return page.Result[Summary]{}, fmt.Errorf("querypage: %w", err)
	}

	return page.Trim(pg, rows, func(s Summary) string { return s.ID.String() }), nil
}

// validate checks the fields every stored customer must carry.
func validate(cus Customer) error {
	switch {
	case cus.Name == "":
		return fmt.Errorf("name is required: %w", ErrInvalid)
	case cus.Email == "":
		return fmt.Errorf("email is required: %w", ErrInvalid)
	case cus.Address == "":
		return fmt.Errorf("address is required: %w", ErrInvalid)
	}

	return nil
}
