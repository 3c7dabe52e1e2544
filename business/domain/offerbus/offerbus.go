// Package offerbus provides business access to offer domain.
package offerbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
)

// DefaultValidity is how long a new offer stays valid.
const DefaultValidity = 14 * 24 * time.Hour

// Set of error variables for CRUD operations.
var (
	ErrNotFound = errors.New("offer not found")
	ErrInvalid  = errors.New("offer rejected by store")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, off Offer) error
	QueryByCustomerID(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID) ([]Offer, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[offerstatus.Status]int, error)
}

// Core manages the set of APIs for offer access.
type Core struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

// NewCore constructs an offer core API for use.
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

// Create adds a new offer for a customer.
func (c *Core) Create(ctx context.Context, no NewOffer) (Offer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.create")
	defer span.End()

	now := c.now().UTC()

	status := no.Status
	if status == (offerstatus.Status{}) {
		status = offerstatus.Draft
	}

	validUntil := no.ValidUntil
	if validUntil.IsZero() {
		validUntil = now.Add(DefaultValidity)
	}

	off := Offer{
		ID:         uuid.New(),
		CustomerID: no.CustomerID,
		Status:     status,
		TotalPrice: no.TotalPrice,
		Note:       strings.TrimSpace(no.Note),
		ValidUntil: validUntil.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storer.Create(ctx, off); err != nil {
		return Offer{}, fmt.Errorf("create: %w", err)
	}

	return off, nil
}

// QueryByCustomerID returns the offers of a customer, newest first.
func (c *Core) QueryByCustomerID(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID) ([]Offer, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.querybycustomerid")
	defer span.End()

	offers, err := c.storer.QueryByCustomerID(ctx, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("query: customerID[%s]: %w", customerID, err)
	}

	return offers, nil
}

// CountByStatus returns the number of the tenant's offers in each status.
// Statuses without offers are absent from the map.
func (c *Core) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[offerstatus.Status]int, error) {
	ctx, span := otel.AddSpan(ctx, "business.offerbus.countbystatus")
	defer span.End()

	counts, err := c.storer.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("countbystatus: %w", err)
	}

	return counts, nil
}
