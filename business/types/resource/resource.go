// Package resource represents the parts of the back office an employee can
// be granted access to.
package resource

import "fmt"

// The set of resources that can be used.
var (
	Customer  = newResource("CUSTOMER")
	Offer     = newResource("OFFER")
	Dashboard = newResource("DASHBOARD")
	Copilot   = newResource("COPILOT")
)

var (
	resources = make(map[string]Resource)
	ordered   []Resource
)

// Resource represents a protected part of the system.
type Resource struct {
	value string
}

func newResource(value string) Resource {
	r := Resource{value}
	resources[value] = r
	ordered = append(ordered, r)
	return r
}

// String returns the name of the resource.
func (r Resource) String() string {
	return r.value
}

// Equal provides support for the go-cmp package and testing.
func (r Resource) Equal(r2 Resource) bool {
	return r.value == r2.value
}

// MarshalText provides support for logging and any marshal needs.
func (r Resource) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// All returns every resource in declaration order.
func All() []Resource {
	out := make([]Resource, len(ordered))
	copy(out, ordered)
	return out
}

// Parse parses the resource name.
func Parse(value string) (Resource, error) {
	r, exists := resources[value]
	if !exists {
		return Resource{}, fmt.Errorf("invalid resource %q", value)
	}

	return r, nil
}
