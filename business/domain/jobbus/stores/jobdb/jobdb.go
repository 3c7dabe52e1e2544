// Package jobdb contains job related read functionality.
package jobdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for job database access.
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

// QueryByDateRange gets the jobs of the tenant dated within the range,
// ordered by date, with offer, customer, vehicle and team roster attached.
func (s *Store) QueryByDateRange(ctx context.Context, tenantID uuid.UUID, start time.Time, end time.Time) ([]jobbus.Job, error) {
	data := struct {
		TenantID string    `db:"tenant_id"`
		Start    time.Time `db:"start"`
		End      time.Time `db:"end"`
	}{
		TenantID: tenantID.String(),
		Start:    start.UTC(),
		End:      end.UTC(),
	}

	const q = `
	SELECT
		j.job_id, j.date,
		o.offer_id, o.status AS offer_status, o.total_price AS offer_total_price,
		c.customer_id, c.name AS customer_name, c.address AS customer_address, c.phone AS customer_phone,
		v.vehicle_id, v.name AS vehicle_name, v.license_plate AS vehicle_plate,
		t.team_id, t.name AS team_name,
		e.employee_id AS member_id, e.name AS member_name
	FROM
		"public"."job" j
	JOIN
		"public"."offer" o ON o.offer_id = j.offer_id
	JOIN
		"public"."customer" c ON c.customer_id = o.customer_id
	LEFT JOIN
		"public"."vehicle" v ON v.vehicle_id = j.vehicle_id
	LEFT JOIN
		"public"."team" t ON t.team_id = j.team_id
	LEFT JOIN
		"public"."team_member" tm ON tm.team_id = t.team_id
	LEFT JOIN
		"public"."employee" e ON e.employee_id = tm.employee_id
	WHERE
		c.tenant_id = :tenant_id AND
		j.date >= :start AND
		j.date <= :end
	ORDER BY
		j.date ASC, j.job_id ASC, e.name ASC`

	var rows []jobRow
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusJobs(rows)
}
