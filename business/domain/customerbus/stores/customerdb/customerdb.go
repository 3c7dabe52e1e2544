// Package customerdb contains customer related CRUD functionality.
package customerdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for customer database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (customerbus.Storer, error) {
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

// Create inserts a new customer into the database.
func (s *Store) Create(ctx context.Context, cus customerbus.Customer) error {
	const q = `
	INSERT INTO "public"."customer"
		(customer_id, tenant_id, name, email, address, phone, type, sqm, cbm, created_at, updated_at)
	VALUES
		(:customer_id, :tenant_id, :name, :email, :address, :phone, :type, :sqm, :cbm, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCustomer(cus)); err != nil {
		if errors.Is(err, sqldb.ErrDBIntegrity) {
			return fmt.Errorf("namedexeccontext: %w: %w", customerbus.ErrInvalid, err)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a customer document in the database.
func (s *Store) Update(ctx context.Context, cus customerbus.Customer) error {
	const q = `
	UPDATE
		"public"."customer"
	SET
		"name" = :name,
		"email" = :email,
		"address" = :address,
		"phone" = :phone,
		"type" = :type,
		"sqm" = :sqm,
		"cbm" = :cbm,
		"updated_at" = :updated_at
	WHERE
		customer_id = :customer_id AND tenant_id = :tenant_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCustomer(cus)); err != nil {
		if errors.Is(err, sqldb.ErrDBIntegrity) {
			return fmt.Errorf("namedexeccontext: %w: %w", customerbus.ErrInvalid, err)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a customer from the database.
func (s *Store) Delete(ctx context.Context, cus customerbus.Customer) error {
	data := struct {
		ID       string `db:"customer_id"`
		TenantID string `db:"tenant_id"`
	}{
		ID:       cus.ID.String(),
		TenantID: cus.TenantID.String(),
	}

	const q = `
	DELETE FROM
		"public"."customer"
	WHERE
		customer_id = :customer_id AND tenant_id = :tenant_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified customer from the database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID, customerID uuid.UUID) (customerbus.Customer, error) {
	data := struct {
		ID       string `db:"customer_id"`
		TenantID string `db:"tenant_id"`
	}{
		ID:       customerID.String(),
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		customer_id, tenant_id, name, email, address, phone, type, sqm, cbm, created_at, updated_at
	FROM
		"public"."customer"
	WHERE
		customer_id = :customer_id AND tenant_id = :tenant_id`

	var dbCus customer
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCus); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return customerbus.Customer{}, fmt.Errorf("db: %w", customerbus.ErrNotFound)
		}
		return customerbus.Customer{}, fmt.Errorf("db: %w", err)
	}

	return toBusCustomer(dbCus)
}

// QueryByNameFragment gets the customers whose name contains the fragment,
// case-insensitive, in creation order.
func (s *Store) QueryByNameFragment(ctx context.Context, tenantID uuid.UUID, fragment string) ([]customerbus.Customer, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
		Fragment string `db:"fragment"`
	}{
		TenantID: tenantID.String(),
		Fragment: fragment,
	}

	const q = `
	SELECT
		customer_id, tenant_id, name, email, address, phone, type, sqm, cbm, created_at, updated_at
	FROM
		"public"."customer"
	WHERE
		tenant_id = :tenant_id AND
		POSITION(LOWER(:fragment) IN LOWER(name)) > 0
	ORDER BY
		created_at ASC, customer_id ASC`

	var dbCuss []customer
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbCuss); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusCustomers(dbCuss)
}

// CountLeads returns the number of customers that have no offer.
func (s *Store) CountLeads(ctx context.Context, tenantID uuid.UUID) (int, error) {
	data := struct {
		TenantID string `db:"tenant_id"`
	}{
		TenantID: tenantID.String(),
	}

	const q = `
	SELECT
		COUNT(1) AS count
	FROM
		"public"."customer" c
	WHERE
		c.tenant_id = :tenant_id AND
		NOT EXISTS (SELECT 1 FROM "public"."offer" o WHERE o.customer_id = c.customer_id)`

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryPage gets up to limit customers in descending creation order that
// sort strictly after the anchor.
func (s *Store) QueryPage(ctx context.Context, tenantID uuid.UUID, after *customerbus.Anchor, limit int) ([]customerbus.Summary, error) {
	data := map[string]any{
		"tenant_id": tenantID.String(),
		"limit":     limit,
	}

	const q = `
	SELECT
		c.customer_id, c.tenant_id, c.name, c.email, c.address, c.phone, c.type, c.sqm, c.cbm,
		c.created_at, c.updated_at,
		(SELECT COUNT(1) FROM "public"."offer" o WHERE o.customer_id = c.customer_id) AS offer_count
	FROM
		"public"."customer" c
	WHERE
		c.tenant_id = :tenant_id`

	buf := bytes.NewBufferString(q)

	if after != nil {
		data["after_created_at"] = after.CreatedAt.UTC().Truncate(time.Microsecond)
		data["after_id"] = after.ID.String()
		buf.WriteString(" AND (c.created_at, c.customer_id) < (:after_created_at, CAST(:after_id AS UUID))")
	}

	buf.WriteString(" ORDER BY c.created_at DESC, c.customer_id DESC LIMIT :limit")

	var dbSums []summary
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbSums); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusSummaries(dbSums)
}
