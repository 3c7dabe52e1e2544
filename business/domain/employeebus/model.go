package employeebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
)

// Employee represents a staff member of a tenant. UserID is the identifier
// issued by the authentication service and maps to exactly one employee.
type Employee struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Role      role.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEmployee contains information needed to create a new employee.
type NewEmployee struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Name     string
	Role     role.Role
}

// Actor is the resolved identity behind a request. Every read and write a
// request performs is scoped to TenantID.
type Actor struct {
	UserID     uuid.UUID
	EmployeeID uuid.UUID
	TenantID   uuid.UUID
	Role       role.Role
}

// ToActor returns the actor view of the employee.
func (e Employee) ToActor() Actor {
	return Actor{
		UserID:     e.UserID,
		EmployeeID: e.ID,
		TenantID:   e.TenantID,
		Role:       e.Role,
	}
}
