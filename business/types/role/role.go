// Package role represents the job role of an employee. The role decides what
// the employee may do through the casbin policy in app/sdk/auth.
package role

import (
	"fmt"
	"strings"
)

// The set of roles that can be used.
var (
	Admin      = newRole("ADMIN", "Administrator")
	Dispatcher = newRole("DISPATCHER", "Disponent")
	Staff      = newRole("STAFF", "Mitarbeiter")
)

var roles = make(map[string]Role)

// Role represents an employee role.
type Role struct {
	value string
	label string
}

func newRole(value string, label string) Role {
	r := Role{value: value, label: label}
	roles[value] = r
	return r
}

// String returns the stored name of the role.
func (r Role) String() string {
	return r.value
}

// Label returns the German display name shown to staff.
func (r Role) Label() string {
	return r.label
}

// Equal provides support for the go-cmp package and testing.
func (r Role) Equal(r2 Role) bool {
	return r.value == r2.value
}

// MarshalText provides support for logging and any marshal needs.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText parses a role from its stored name.
func (r *Role) UnmarshalText(data []byte) error {
	v, err := Parse(string(data))
	if err != nil {
		return err
	}

	*r = v
	return nil
}

// All returns the known roles from most to least privileged.
func All() []Role {
	return []Role{Admin, Dispatcher, Staff}
}

// Parse parses the role name. Surrounding space and letter case are ignored
// so operator input like " dispatcher" is accepted.
func Parse(value string) (Role, error) {
	r, exists := roles[strings.ToUpper(strings.TrimSpace(value))]
	if !exists {
		return Role{}, fmt.Errorf("invalid role %q", value)
	}

	return r, nil
}
