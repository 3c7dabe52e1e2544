package jobbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/shopspring/decimal"
)

// Job is a scheduled move together with the offer and customer it belongs to
// and the vehicle and team assigned to it.
type Job struct {
	ID       uuid.UUID
	Date     time.Time
	Offer    OfferRef
	Customer CustomerRef
	Vehicle  *Vehicle
	Team     *Team
}

// OfferRef is the offer a job executes.
type OfferRef struct {
	ID         uuid.UUID
	Status     offerstatus.Status
	TotalPrice decimal.NullDecimal
}

// CustomerRef is the customer that owns the offer of a job.
type CustomerRef struct {
	ID      uuid.UUID
	Name    string
	Address string
	Phone   string
}

// Vehicle is a truck or van of the tenant's fleet.
type Vehicle struct {
	ID           uuid.UUID
	Name         string
	LicensePlate string
}

// Team is a crew of employees assigned to jobs.
type Team struct {
	ID      uuid.UUID
	Name    string
	Members []Member
}

// Member is an employee on a team.
type Member struct {
	EmployeeID uuid.UUID
	Name       string
}
