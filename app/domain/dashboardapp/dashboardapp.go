// Package dashboardapp maintains the app layer api for the dashboard and the
// calendar view.
package dashboardapp

import (
	"context"
	"net/http"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/dashboardbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
)

type app struct {
	dashboardBus *dashboardbus.Core
	now          func() time.Time
}

func newApp(dashboardBus *dashboardbus.Core, now func() time.Time) *app {
	if now == nil {
		now = time.Now
	}

	return &app{
		dashboardBus: dashboardBus,
		now:          now,
	}
}

// stats returns the dashboard statistics of the caller's company.
func (a *app) stats(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	stats, err := a.dashboardBus.Stats(ctx, tenantID, a.now().UTC())
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "stats: %s", err)
	}

	return toAppStats(stats)
}

// calendar returns the jobs between the start and end query parameters
// grouped by day.
func (a *app) calendar(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	rng, ferr := parseRange(r)
	if ferr != nil {
		return ferr
	}

	cal, err := a.dashboardBus.Calendar(ctx, tenantID, rng.start, rng.end)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "calendar: %s", err)
	}

	return toAppCalendar(cal)
}

type dateRange struct {
	start time.Time
	end   time.Time
}

func parseRange(r *http.Request) (dateRange, *errs.Error) {
	var fe errs.FieldErrors

	var rng dateRange

	parse := func(field string) time.Time {
		v := r.URL.Query().Get(field)
		if v == "" {
			fe.Add(field, errRequired)
			return time.Time{}
		}

		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fe.Add(field, errRFC3339)
			return time.Time{}
		}

		return t
	}

	rng.start = parse("start")
	rng.end = parse("end")

	if !rng.start.IsZero() && !rng.end.IsZero() && rng.end.Before(rng.start) {
		fe.Add("end", errEndBeforeStart)
	}

	if len(fe) > 0 {
		return dateRange{}, fe.ToError()
	}

	return rng, nil
}
