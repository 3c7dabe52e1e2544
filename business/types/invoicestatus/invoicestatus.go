// Package invoicestatus represents the payment state of an invoice.
package invoicestatus

import "fmt"

// The set of invoice states that can be used.
var (
	Open      = newStatus("OPEN")
	Overdue1  = newStatus("OVERDUE_1")
	Overdue2  = newStatus("OVERDUE_2")
	Overdue3  = newStatus("OVERDUE_3")
	Paid      = newStatus("PAID")
	Cancelled = newStatus("CANCELLED")
)

// =============================================================================

// Set of known invoice states.
var statuses = make(map[string]Status)

// Status represents an invoice status in the system.
type Status struct {
	value string
}

func newStatus(status string) Status {
	s := Status{status}
	statuses[status] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// OverdueEligible reports whether an invoice in this state still counts as
// outstanding once its due date has passed.
func (s Status) OverdueEligible() bool {
	switch s {
	case Open, Overdue1, Overdue2, Overdue3:
		return true
	}

	return false
}

// OverdueEligible returns the states an overdue invoice can be in.
func OverdueEligible() []Status {
	return []Status{Open, Overdue1, Overdue2, Overdue3}
}

// =============================================================================

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	status, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid invoice status %q", value)
	}

	return status, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	status, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return status
}
