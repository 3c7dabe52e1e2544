package offerbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/shopspring/decimal"
)

// Offer represents a priced proposal made to a customer.
type Offer struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Status     offerstatus.Status
	TotalPrice decimal.NullDecimal
	Note       string
	ValidUntil time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOffer contains information needed to create a new offer. A zero Status
// becomes DRAFT and a zero ValidUntil becomes DefaultValidity from now.
type NewOffer struct {
	CustomerID uuid.UUID
	Status     offerstatus.Status
	TotalPrice decimal.NullDecimal
	Note       string
	ValidUntil time.Time
}
