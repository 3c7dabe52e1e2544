package customerbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/phone"
	"github.com/shopspring/decimal"
)

// Customer represents a private household or business that requests a move.
// Sqm and Cbm are the living area and the estimated load volume.
type Customer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     string
	Address   string
	Phone     phone.Null
	Type      customertype.CustomerType
	Sqm       decimal.NullDecimal
	Cbm       decimal.NullDecimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is a customer as it appears in the paginated listing.
type Summary struct {
	Customer
	OfferCount int
}

// NewCustomer contains information needed to create a new customer. A zero
// Type falls back to customertype.Default.
type NewCustomer struct {
	TenantID uuid.UUID
	Name     string
	Email    string
	Address  string
	Phone    phone.Null
	Type     customertype.CustomerType
	Sqm      decimal.NullDecimal
	Cbm      decimal.NullDecimal
}

// UpdateCustomer contains information needed to update a customer.
type UpdateCustomer struct {
	Name    *string
	Email   *string
	Address *string
	Phone   *phone.Null
	Type    *customertype.CustomerType
	Sqm     *decimal.NullDecimal
	Cbm     *decimal.NullDecimal
}

// Anchor is the position of the last row of a page in the listing order.
type Anchor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}
