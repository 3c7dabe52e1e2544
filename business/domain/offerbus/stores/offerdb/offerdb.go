// Package offerdb contains offer related CRUD functionality.
package offerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for offer database access.
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

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (offerbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new offer into the database.
func (s *Store) Create(ctx context.Context, off offerbus.Offer) error {
	const q = `
	INSERT INTO "public"."offer"
		(offer_id, customer_id, status, total_price, note, valid_until, created_at, updated_at)
	VALUES
		(:offer_id, :customer_id, :status, :total_price, :note, :valid_until, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBOffer(off)); err != nil {
		if errors.Is(err, sqldb.ErrDBIntegrity) {
			return fmt.Errorf("namedexeccontext: %w: %w", offerbus.ErrInvalid, err)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByCustomerID gets the offers of a customer owned by the tenant.
func (s *Store) QueryByCustomerID(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID) ([]offerbus.Offer, error) {
	data := struct {
		TenantID   string `db:"tenant_id"`
		CustomerID string `db:"customer_id"`
	}{
		TenantID:   tenantID.String(),
		CustomerID: customerID.String(),
	}

	const q = `
	SELECT
		o.offer_id, o.customer_id, o.status, o.total_price, o.note, o.valid_until, o.created_at, o.updated_at
	FROM
		"public"."offer" o
	JOIN
		"public"."customer" c ON c.customer_id = o.customer_id
	WHERE
		c.tenant_id = :tenant_id AND
		o.customer_id = :customer_id
	ORDER BY
		o.created_at DESC, o.offer_id DESC`

	var dbOffs []offer
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbOffs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusOffers(dbOffs)
}

// CountByStatus gets the number of offers per status for the tenant.
func (s *Store) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[offerstatus.Status]int, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
	}{
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		o.status, COUNT(1) AS count
	FROM
		"public"."offer" o
	JOIN
		"public"."customer" c ON c.customer_id = o.customer_id
	WHERE
		c.tenant_id = :tenant_id
	GROUP BY
		o.status`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	counts := make(map[offerstatus.Status]int, len(rows))
	for _, row := range rows {
		status, err := offerstatus.Parse(row.Status)
		if err != nil {
			return nil, fmt.Errorf("parse status: %w", err)
		}
		counts[status] = row.Count
	}

	return counts, nil
}
