// Package customertype represents the kind of customer a moving company serves.
package customertype

import "fmt"

// The set of customer types that can be used.
var (
	Private  = newType("PRIVATE")
	Business = newType("BUSINESS")
)

// Default is applied when no type is supplied.
var Default = Private

// =============================================================================

// Set of known customer types.
var types = make(map[string]CustomerType)

// CustomerType represents a customer type in the system.
type CustomerType struct {
	value string
}

func newType(typ string) CustomerType {
	t := CustomerType{typ}
	types[typ] = t
	return t
}

// String returns the name of the customer type.
func (t CustomerType) String() string {
	return t.value
}

// Equal provides support for the go-cmp package and testing.
func (t CustomerType) Equal(t2 CustomerType) bool {
	return t.value == t2.value
}

// MarshalText provides support for logging and any marshal needs.
func (t CustomerType) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// =============================================================================

// Names returns the names of all known customer types.
func Names() []string {
	return []string{Private.value, Business.value}
}

// Parse parses the string value and returns a customer type if one exists.
func Parse(value string) (CustomerType, error) {
	typ, exists := types[value]
	if !exists {
		return CustomerType{}, fmt.Errorf("invalid customer type %q", value)
	}

	return typ, nil
}

// MustParse parses the string value and returns a customer type if one exists.
// If an error occurs the function panics.
func MustParse(value string) CustomerType {
	typ, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return typ
}
