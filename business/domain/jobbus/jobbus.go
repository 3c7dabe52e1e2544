// Package jobbus provides business access to scheduled jobs.
package jobbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
)

// ErrInvalidRange is returned when the end of a range precedes its start.
var ErrInvalidRange = errors.New("invalid date range")

// Storer interface declares the behavior this package needs to retrieve data.
type Storer interface {
	QueryByDateRange(ctx context.Context, tenantID uuid.UUID, start time.Time, end time.Time) ([]Job, error)
}

// Core manages the set of APIs for job access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a job core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// QueryByDateRange returns the tenant's jobs dated within [start, end], both
// bounds inclusive, in ascending date order.
func (c *Core) QueryByDateRange(ctx context.Context, tenantID uuid.UUID, start time.Time, end time.Time) ([]Job, error) {
	ctx, span := otel.AddSpan(ctx, "business.jobbus.querybydaterange")
	defer span.End()

	if end.Before(start) {
		return nil, fmt.Errorf("querybydaterange: %w", ErrInvalidRange)
	}

	jobs, err := c.storer.QueryByDateRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querybydaterange: %w", err)
	}

	return jobs, nil
}
