package invoicebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/invoicestatus"
	"github.com/shopspring/decimal"
)

// Invoice represents the bill for a completed job.
type Invoice struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	Number    string
	Amount    decimal.Decimal
	Status    invoicestatus.Status
	DueDate   time.Time
	CreatedAt time.Time
}

// Overdue is an overdue invoice together with the job, offer and customer it
// was issued for.
type Overdue struct {
	Invoice
	JobDate      time.Time
	OfferID      uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
}
