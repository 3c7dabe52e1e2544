package tenantbus

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents a moving company. Every customer, offer, job and invoice
// belongs to exactly one tenant.
type Tenant struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTenant contains information needed to create a new tenant.
type NewTenant struct {
	Name string
	Slug string
}
