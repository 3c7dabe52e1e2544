// Package invoicedb contains invoice related read functionality.
package invoicedb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/invoicestatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for invoice database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// QueryOverdue gets the invoices of the tenant due strictly before now that
// are still outstanding.
func (s *Store) QueryOverdue(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]invoicebus.Overdue, error) {
	eligible := invoicestatus.OverdueEligible()
	statuses := make([]string, len(eligible))
	for i, st := range eligible {
		statuses[i] = st.String()
	}

	data := map[string]any{
		"tenant_id": tenantID.String(),
		"now":       now.UTC(),
		"statuses":  statuses,
	}

	const q = `
	SELECT
		i.invoice_id, i.job_id, i.number, i.amount, i.status, i.due_date, i.created_at,
		j.date AS job_date,
		o.offer_id,
		c.customer_id, c.name AS customer_name
	FROM
		"public"."invoice" i
	JOIN
		"public"."job" j ON j.job_id = i.job_id
	JOIN
		"public"."offer" o ON o.offer_id = j.offer_id
	JOIN
		"public"."customer" c ON c.customer_id = o.customer_id
	WHERE
		c.tenant_id = :tenant_id AND
		i.due_date < :now AND
		i.status = ANY(:statuses)
	ORDER BY
		i.due_date ASC, i.invoice_id ASC`

	var dbRows []overdue
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbRows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusOverdues(dbRows)
}
