package invoicebus_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/invoicestatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOverdueBoundary(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		due    time.Time
		status invoicestatus.Status
		want   bool
	}{
		{"due-equals-now", now, invoicestatus.Open, false},
		{"due-one-microsecond-before", now.Add(-time.Microsecond), invoicestatus.Open, true},
		{"due-after-now", now.Add(time.Hour), invoicestatus.Overdue1, false},
		{"escalated", now.Add(-48 * time.Hour), invoicestatus.Overdue3, true},
		{"paid", now.Add(-48 * time.Hour), invoicestatus.Paid, false},
		{"cancelled", now.Add(-48 * time.Hour), invoicestatus.Cancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invoicebus.Invoice{DueDate: tt.due, Status: tt.status}
			assert.Equal(t, tt.want, invoicebus.IsOverdue(inv, now))
		})
	}
}

type staticStore []invoicebus.Overdue

func (s staticStore) QueryOverdue(context.Context, uuid.UUID, time.Time) ([]invoicebus.Overdue, error) {
	return s, nil
}

func TestQueryOverdueFilters(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	store := staticStore{
		{Invoice: invoicebus.Invoice{Number: "R-1", DueDate: now.Add(-time.Microsecond), Status: invoicestatus.Open}},
		{Invoice: invoicebus.Invoice{Number: "R-2", DueDate: now, Status: invoicestatus.Open}},
		{Invoice: invoicebus.Invoice{Number: "R-3", DueDate: now.Add(-time.Hour), Status: invoicestatus.Paid}},
	}

	got, err := invoicebus.NewCore(log, store).QueryOverdue(context.Background(), uuid.New(), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "R-1", got[0].Number)
}
