// Package employeebus provides business access to the staff members of a
// tenant and resolves the actor behind an authenticated user.
package employeebus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("employee not found")
	ErrUniqueUser = errors.New("user already belongs to an employee")
	ErrInvalid    = errors.New("employee is invalid")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, emp Employee) error
	QueryByUserID(ctx context.Context, userID uuid.UUID) (Employee, error)
}

// Core manages the set of APIs for employee access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs an employee core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new employee to a tenant.
func (c *Core) Create(ctx context.Context, ne NewEmployee) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.create")
	defer span.End()

	name := strings.TrimSpace(ne.Name)
	if name == "" || ne.UserID == uuid.Nil || ne.TenantID == uuid.Nil {
		return Employee{}, fmt.Errorf("create: %w", ErrInvalid)
	}

	now := time.Now().UTC()

	emp := Employee{
		ID:        uuid.New(),
		UserID:    ne.UserID,
		TenantID:  ne.TenantID,
		Name:      name,
		Role:      ne.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, emp); err != nil {
		return Employee{}, fmt.Errorf("create: %w", err)
	}

	return emp, nil
}

// QueryByUserID finds the employee bound to the authenticated user.
func (c *Core) QueryByUserID(ctx context.Context, userID uuid.UUID) (Employee, error) {
	ctx, span := otel.AddSpan(ctx, "business.employeebus.queryByUserID")
	defer span.End()

	emp, err := c.storer.QueryByUserID(ctx, userID)
	if err != nil {
		return Employee{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return emp, nil
}

// ResolveActor returns the tenant, role and employee behind the user. A user
// without an employee record yields ErrNotFound.
func (c *Core) ResolveActor(ctx context.Context, userID uuid.UUID) (Actor, error) {
	emp, err := c.QueryByUserID(ctx, userID)
	if err != nil {
		return Actor{}, err
	}

	return emp.ToActor(), nil
}
