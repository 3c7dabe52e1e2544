// Package employeedb contains employee related CRUD functionality.
package employeedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for employee database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (employeebus.Storer, error) {
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

// Create inserts a new employee into the database.
func (s *Store) Create(ctx context.Context, emp employeebus.Employee) error {
	const q = `
	INSERT INTO "public"."employee"
		(employee_id, user_id, tenant_id, name, role, created_at, updated_at)
	VALUES
		(:employee_id, :user_id, :tenant_id, :name, :role, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBEmployee(emp)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) && dupErr.Column == "uq_employee_user" {
			return fmt.Errorf("namedexeccontext: %w", employeebus.ErrUniqueUser)
		}
		if errors.Is(err, sqldb.ErrDBIntegrity) {
			return fmt.Errorf("namedexeccontext: %w", employeebus.ErrInvalid)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByUserID gets the employee bound to the specified user.
func (s *Store) QueryByUserID(ctx context.Context, userID uuid.UUID) (employeebus.Employee, error) {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	SELECT
		employee_id, user_id, tenant_id, name, role, created_at, updated_at
	FROM
		"public"."employee"
	WHERE
		user_id = :user_id`

	var dbEmp employee
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbEmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return employeebus.Employee{}, fmt.Errorf("db: %w", employeebus.ErrNotFound)
		}
		return employeebus.Employee{}, fmt.Errorf("db: %w", err)
	}

	return toBusEmployee(dbEmp)
}
