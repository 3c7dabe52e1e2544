package dashboardbus_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/dashboardbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/invoicestatus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakes struct {
	leads    int
	offers   map[offerstatus.Status]int
	overdue  []invoicebus.Overdue
	jobs     []jobbus.Job
	jobsErr  error
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakes) CountLeads(context.Context, uuid.UUID) (int, error) {
	return f.leads, nil
}

func (f *fakes) CountByStatus(context.Context, uuid.UUID) (map[offerstatus.Status]int, error) {
	return f.offers, nil
}

func (f *fakes) QueryOverdue(context.Context, uuid.UUID, time.Time) ([]invoicebus.Overdue, error) {
	return f.overdue, nil
}

func (f *fakes) QueryByDateRange(_ context.Context, _ uuid.UUID, start time.Time, end time.Time) ([]jobbus.Job, error) {
	f.gotStart, f.gotEnd = start, end
	return f.jobs, f.jobsErr
}

func newCore(f *fakes) *dashboardbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return dashboardbus.NewCore(dashboardbus.Config{
		Log:      log,
		Leads:    f,
		Offers:   f,
		Invoices: f,
		Jobs:     f,
	})
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2024, 2, 17, 13, 45, 0, 0, time.UTC)

	start, end := dashboardbus.MonthWindow(now)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC), end)
}

func TestMonthWindowUsesUTC(t *testing.T) {
	berlin := time.FixedZone("CET", 60*60)
	now := time.Date(2024, 3, 1, 0, 30, 0, 0, berlin)

	start, end := dashboardbus.MonthWindow(now)

	assert.Equal(t, time.UTC, start.Location())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC), end)
}

func TestStats(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	f := &fakes{
		leads:  4,
		offers: map[offerstatus.Status]int{offerstatus.Draft: 2, offerstatus.Accepted: 1},
		overdue: []invoicebus.Overdue{
			{Invoice: invoicebus.Invoice{Number: "R-1", Status: invoicestatus.Overdue1}},
		},
		jobs: []jobbus.Job{{ID: uuid.New(), Date: now}},
	}

	stats, err := newCore(f).Stats(context.Background(), uuid.New(), now)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.OpenLeads)
	assert.Equal(t, 2, stats.OffersByStatus[offerstatus.Draft])
	assert.Len(t, stats.Overdue, 1)
	assert.Len(t, stats.JobsThisMonth, 1)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), f.gotStart)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999000, time.UTC), f.gotEnd)
}

func TestStatsPropagatesFailure(t *testing.T) {
	f := &fakes{jobsErr: errors.New("connection refused")}

	_, err := newCore(f).Stats(context.Background(), uuid.New(), time.Now())
	assert.ErrorContains(t, err, "connection refused")
}

func TestCalendarGroupsByDay(t *testing.T) {
	morning := jobbus.Job{ID: uuid.New(), Date: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	afternoon := jobbus.Job{ID: uuid.New(), Date: time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)}
	nextDay := jobbus.Job{ID: uuid.New(), Date: time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)}

	f := &fakes{jobs: []jobbus.Job{morning, afternoon, nextDay}}

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cal, err := newCore(f).Calendar(context.Background(), uuid.New(), start, start.AddDate(0, 0, 7))
	require.NoError(t, err)

	require.Len(t, cal, 2)
	require.Len(t, cal["2025-03-01"], 2)
	assert.Equal(t, morning.ID, cal["2025-03-01"][0].ID)
	assert.Equal(t, afternoon.ID, cal["2025-03-01"][1].ID)
	require.Len(t, cal["2025-03-02"], 1)
	assert.Equal(t, nextDay.ID, cal["2025-03-02"][0].ID)
}
