package authapp

import (
	"encoding/json"

	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/tenantbus"
)

// Company is the tenant the caller works for.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Identity is the authenticated employee.
type Identity struct {
	UserID     string  `json:"userId"`
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	RoleLabel  string  `json:"roleLabel"`
	Company    Company `json:"company"`

	// Permissions maps a resource to the actions allowed on it.
	Permissions map[string][]string `json:"permissions"`
}

// Encode implements the web.Encoder interface.
func (i Identity) Encode() ([]byte, string, error) {
	data, err := json.Marshal(i)
	return data, "application/json", err
}

func toAppIdentity(emp employeebus.Employee, tnt tenantbus.Tenant, perms map[string][]string) Identity {
	return Identity{
		UserID:     emp.UserID.String(),
		EmployeeID: emp.ID.String(),
		Name:       emp.Name,
		Role:       emp.Role.String(),
		RoleLabel:  emp.Role.Label(),
		Company: Company{
			ID:   tnt.ID.String(),
			Name: tnt.Name,
			Slug: tnt.Slug,
		},
		Permissions: perms,
	}
}
