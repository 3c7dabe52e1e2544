package employeedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
)

type employee struct {
	ID        uuid.UUID `db:"employee_id"`
	UserID    uuid.UUID `db:"user_id"`
	TenantID  uuid.UUID `db:"tenant_id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBEmployee(bus employeebus.Employee) employee {
	return employee{
		ID:        bus.ID,
		UserID:    bus.UserID,
		TenantID:  bus.TenantID,
		Name:      bus.Name,
		Role:      bus.Role.String(),
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusEmployee(db employee) (employeebus.Employee, error) {
	r, err := role.Parse(db.Role)
	if err != nil {
		return employeebus.Employee{}, fmt.Errorf("parse role: %w", err)
	}

	bus := employeebus.Employee{
		ID:        db.ID,
		UserID:    db.UserID,
		TenantID:  db.TenantID,
		Name:      db.Name,
		Role:      r,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}
