// Package phone represents a customer phone number.
package phone

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Phone represents a phone number in the system. The value is stored with
// separators removed so "+49 (0)30 / 123-45" and "+4930 12345" compare equal.
type Phone struct {
	value string
}

// String returns the value of the phone number.
func (p Phone) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Phone) Equal(p2 Phone) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

var (
	separators = strings.NewReplacer(" ", "", "-", "", "/", "", "(0)", "", "(", "", ")", "", ".", "")
	phoneRegEx = regexp.MustCompile(`^\+?[0-9]{5,20}$`)
)

func normalize(value string) (string, error) {
	v := separators.Replace(strings.TrimSpace(value))
	if !phoneRegEx.MatchString(v) {
		return "", fmt.Errorf("invalid phone %q", value)
	}

	return v, nil
}

// Parse parses the string value and returns a phone number if the value complies
// with the rules for a phone number.
func Parse(value string) (Phone, error) {
	v, err := normalize(value)
	if err != nil {
		return Phone{}, err
	}

	return Phone{v}, nil
}

// MustParse parses the string value and returns a phone number if the value
// complies with the rules for a phone number. If an error occurs the function panics.
func MustParse(value string) Phone {
	phone, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return phone
}

// =============================================================================

// Null represents a phone number in the system that can be empty.
type Null struct {
	value string
	valid bool
}

// Valid reports whether a number is present.
func (n Null) Valid() bool {
	return n.valid
}

// String returns the value of the phone number or an empty string.
func (n Null) String() string {
	return n.value
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// FromSQLNullString converts a sql NullString read from the store. The value
// is trusted to have been normalized on the way in.
func FromSQLNullString(ns sql.NullString) Null {
	if !ns.Valid || ns.String == "" {
		return Null{}
	}

	return Null{ns.String, true}
}

// =============================================================================

// ParseNull parses the string value and returns a phone number if the value
// complies with the rules for a phone number. An empty value yields an empty Null.
func ParseNull(value string) (Null, error) {
	if strings.TrimSpace(value) == "" {
		return Null{}, nil
	}

	v, err := normalize(value)
	if err != nil {
		return Null{}, err
	}

	return Null{v, true}, nil
}

// MustParseNull parses the string value and returns a phone number if the value
// complies with the rules for a phone number. If an error occurs the function panics.
func MustParseNull(value string) Null {
	phone, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return phone
}
