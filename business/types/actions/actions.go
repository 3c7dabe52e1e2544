// Package actions represents what a role may do to a resource. Plain CRUD
// routes derive the action from the HTTP method; the copilot uses USE.
package actions

import (
	"fmt"
	"net/http"
)

// The set of actions that can be used.
var (
	Get    = newAction("GET", http.MethodGet)
	Create = newAction("CREATE", http.MethodPost)
	Update = newAction("UPDATE", http.MethodPut, http.MethodPatch)
	Delete = newAction("DELETE", http.MethodDelete)
	Use    = newAction("USE")
)

var (
	actions  = make(map[string]Action)
	byMethod = make(map[string]Action)
	ordered  []Action
)

// Action represents an operation on a resource.
type Action struct {
	value string
}

func newAction(value string, methods ...string) Action {
	a := Action{value}
	actions[value] = a
	ordered = append(ordered, a)
	for _, m := range methods {
		byMethod[m] = a
	}
	return a
}

// String returns the name of the action.
func (a Action) String() string {
	return a.value
}

// Equal provides support for the go-cmp package and testing.
func (a Action) Equal(a2 Action) bool {
	return a.value == a2.value
}

// MarshalText provides support for logging and any marshal needs.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.value), nil
}

// All returns every action in declaration order.
func All() []Action {
	out := make([]Action, len(ordered))
	copy(out, ordered)
	return out
}

// Parse parses the action name.
func Parse(value string) (Action, error) {
	a, exists := actions[value]
	if !exists {
		return Action{}, fmt.Errorf("invalid action %q", value)
	}

	return a, nil
}

// FromHTTPMethod returns the action a request method performs.
func FromHTTPMethod(method string) (Action, error) {
	a, exists := byMethod[method]
	if !exists {
		return Action{}, fmt.Errorf("no action for method %s", method)
	}

	return a, nil
}
