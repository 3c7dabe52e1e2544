package dashboardbus

import (
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
)

// Stats is the statistics bundle shown on the dashboard.
type Stats struct {
	OpenLeads      int
	OffersByStatus map[offerstatus.Status]int
	Overdue        []invoicebus.Overdue
	JobsThisMonth  []jobbus.Job
	MonthStart     time.Time
	MonthEnd       time.Time
}

// Calendar maps an ISO date (2006-01-02) to the jobs of that day.
type Calendar map[string][]jobbus.Job
