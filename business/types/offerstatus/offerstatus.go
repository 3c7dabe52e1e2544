// Package offerstatus represents the lifecycle state of an offer.
package offerstatus

import "fmt"

// The set of offer states that can be used.
var (
	Draft    = newStatus("DRAFT")
	Sent     = newStatus("SENT")
	Accepted = newStatus("ACCEPTED")
	Rejected = newStatus("REJECTED")
	Expired  = newStatus("EXPIRED")
)

// =============================================================================

// Set of known offer states.
var statuses = make(map[string]Status)

// Status represents an offer status in the system.
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

// =============================================================================

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	status, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid offer status %q", value)
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
