// Package invoicebus provides business access to invoices.
package invoicebus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
)

// Storer interface declares the behavior this package needs to retrieve data.
type Storer interface {
	QueryOverdue(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]Overdue, error)
}

// Core manages the set of APIs for invoice access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs an invoice core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// IsOverdue reports whether the invoice is overdue at now: its due date lies
// strictly before now and its status still counts as outstanding.
func IsOverdue(inv Invoice, now time.Time) bool {
	return inv.DueDate.Before(now) && inv.Status.OverdueEligible()
}

// QueryOverdue returns the tenant's overdue invoices at now, oldest due date
// first.
func (c *Core) QueryOverdue(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]Overdue, error) {
	ctx, span := otel.AddSpan(ctx, "business.invoicebus.queryoverdue")
	defer span.End()

	rows, err := c.storer.QueryOverdue(ctx, tenantID, now)
	if err != nil {
		return nil, fmt.Errorf("queryoverdue: %w", err)
	}

	overdue := rows[:0]
	for _, row := range rows {
		if IsOverdue(row.Invoice, now) {
			overdue = append(overdue, row)
		}
	}

	return overdue, nil
}
