// Package dashboardbus provides the read-only aggregates behind the dashboard
// and the calendar view.
package dashboardbus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
	"golang.org/x/sync/errgroup"
)

// DayFormat is the calendar bucket key layout.
const DayFormat = "2006-01-02"

// LeadCounter counts customers without offers.
type LeadCounter interface {
	CountLeads(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// OfferCounter counts offers per status.
type OfferCounter interface {
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[offerstatus.Status]int, error)
}

// OverdueQuerier finds overdue invoices.
type OverdueQuerier interface {
	QueryOverdue(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]invoicebus.Overdue, error)
}

// JobQuerier finds jobs in a date range.
type JobQuerier interface {
	QueryByDateRange(ctx context.Context, tenantID uuid.UUID, start time.Time, end time.Time) ([]jobbus.Job, error)
}

// Config holds the collaborators the dashboard aggregates over.
type Config struct {
	Log      *logger.Logger
	Leads    LeadCounter
	Offers   OfferCounter
	Invoices OverdueQuerier
	Jobs     JobQuerier
}

// Core manages the set of APIs for dashboard access.
type Core struct {
	log      *logger.Logger
	leads    LeadCounter
	offers   OfferCounter
	invoices OverdueQuerier
	jobs     JobQuerier
}

// NewCore constructs a dashboard core API for use.
func NewCore(cfg Config) *Core {
	return &Core{
		log:      cfg.Log,
		leads:    cfg.Leads,
		offers:   cfg.Offers,
		invoices: cfg.Invoices,
		jobs:     cfg.Jobs,
	}
}

// MonthWindow returns the first and the last instant of the UTC calendar
// month containing now.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Microsecond)

	return start, end
}

// Stats computes the dashboard statistics for the tenant at now. The four
// reads are independent and run concurrently.
func (c *Core) Stats(ctx context.Context, tenantID uuid.UUID, now time.Time) (Stats, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.stats")
	defer span.End()

	start, end := MonthWindow(now)

	stats := Stats{
		MonthStart: start,
		MonthEnd:   end,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := c.leads.CountLeads(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("countleads: %w", err)
		}
		stats.OpenLeads = n
		return nil
	})

	g.Go(func() error {
		counts, err := c.offers.CountByStatus(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("countbystatus: %w", err)
		}
		stats.OffersByStatus = counts
		return nil
	})

	g.Go(func() error {
		overdue, err := c.invoices.QueryOverdue(gctx, tenantID, now)
		if err != nil {
			return fmt.Errorf("queryoverdue: %w", err)
		}
		stats.Overdue = overdue
		return nil
	})

	g.Go(func() error {
		jobs, err := c.jobs.QueryByDateRange(gctx, tenantID, start, end)
		if err != nil {
			return fmt.Errorf("querybydaterange: %w", err)
		}
		stats.JobsThisMonth = jobs
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}

	return stats, nil
}

// Calendar returns the tenant's jobs within [start, end] bucketed by day.
// Within a bucket the jobs keep the ascending date order of the query.
func (c *Core) Calendar(ctx context.Context, tenantID uuid.UUID, start time.Time, end time.Time) (Calendar, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.calendar")
	defer span.End()

	jobs, err := c.jobs.QueryByDateRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}

	return GroupByDay(jobs), nil
}

// GroupByDay buckets jobs by their UTC calendar day.
func GroupByDay(jobs []jobbus.Job) Calendar {
	cal := make(Calendar)

	for _, job := range jobs {
		key := job.Date.UTC().Format(DayFormat)
		cal[key] = append(cal[key], job)
	}

	return cal
}
