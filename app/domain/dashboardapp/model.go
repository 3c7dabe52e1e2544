package dashboardapp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/business/domain/dashboardbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
)

var (
	errRequired       = errors.New("is required")
	errRFC3339        = errors.New("must be an RFC3339 timestamp")
	errEndBeforeStart = errors.New("must not be before start")
)

// Customer is the customer at the end of an ownership chain.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Offer is the offer a job executes.
type Offer struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	TotalPrice *string  `json:"totalPrice"`
	Customer   Customer `json:"customer"`
}

// Vehicle is the vehicle assigned to a job.
type Vehicle struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
}

// Member is an employee of a team.
type Member struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

// Team is the crew assigned to a job.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Job is a scheduled move with its offer, vehicle and team.
type Job struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Offer   Offer    `json:"offer"`
	Vehicle *Vehicle `json:"vehicle"`
	Team    *Team    `json:"team"`
}

func toAppJob(bus jobbus.Job) Job {
	job := Job{
		ID:   bus.ID.String(),
		Date: bus.Date.Format(time.RFC3339),
		Offer: Offer{
			ID:     bus.Offer.ID.String(),
			Status: bus.Offer.Status.String(),
			Customer: Customer{
				ID:      bus.Customer.ID.String(),
				Name:    bus.Customer.Name,
				Address: bus.Customer.Address,
				Phone:   bus.Customer.Phone,
			},
		},
	}

	if bus.Offer.TotalPrice.Valid {
		price := bus.Offer.TotalPrice.Decimal.StringFixed(2)
		job.Offer.TotalPrice = &price
	}

	if bus.Vehicle != nil {
		job.Vehicle = &Vehicle{
			ID:           bus.Vehicle.ID.String(),
			Name:         bus.Vehicle.Name,
			LicensePlate: bus.Vehicle.LicensePlate,
		}
	}

	if bus.Team != nil {
		members := make([]Member, len(bus.Team.Members))
		for i, m := range bus.Team.Members {
			members[i] = Member{
				EmployeeID: m.EmployeeID.String(),
				Name:       m.Name,
			}
		}

		job.Team = &Team{
			ID:      bus.Team.ID.String(),
			Name:    bus.Team.Name,
			Members: members,
		}
	}

	return job
}

func toAppJobs(bus []jobbus.Job) []Job {
	jobs := make([]Job, len(bus))
	for i, j := range bus {
		jobs[i] = toAppJob(j)
	}
	return jobs
}

// OverdueInvoice is an unpaid invoice past its due date together with the
// job, offer and customer it was issued for.
type OverdueInvoice struct {
	ID       string   `json:"id"`
	Number   string   `json:"number"`
	Amount   string   `json:"amount"`
	Status   string   `json:"status"`
	DueDate  string   `json:"dueDate"`
	JobID    string   `json:"jobId"`
	JobDate  string   `json:"jobDate"`
	OfferID  string   `json:"offerId"`
	Customer Customer `json:"customer"`
}

func toAppOverdue(bus []invoicebus.Overdue) []OverdueInvoice {
	out := make([]OverdueInvoice, len(bus))
	for i, o := range bus {
		out[i] = OverdueInvoice{
			ID:      o.ID.String(),
			Number:  o.Number,
			Amount:  o.Amount.StringFixed(2),
			Status:  o.Status.String(),
			DueDate: o.DueDate.Format(time.RFC3339),
			JobID:   o.JobID.String(),
			JobDate: o.JobDate.Format(time.RFC3339),
			OfferID: o.OfferID.String(),
			Customer: Customer{
				ID:   o.CustomerID.String(),
				Name: o.CustomerName,
			},
		}
	}
	return out
}

// Stats is the statistics bundle shown on the dashboard.
type Stats struct {
	OpenLeads       int              `json:"openLeads"`
	OffersByStatus  map[string]int   `json:"offersByStatus"`
	OverdueInvoices []OverdueInvoice `json:"overdueInvoices"`
	JobsThisMonth   []Job            `json:"jobsThisMonth"`
	MonthStart      string           `json:"monthStart"`
	MonthEnd        string           `json:"monthEnd"`
}

// Encode implements the web.Encoder interface.
func (s Stats) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppStats(bus dashboardbus.Stats) Stats {
	byStatus := make(map[string]int, len(bus.OffersByStatus))
	for status, n := range bus.OffersByStatus {
		byStatus[status.String()] = n
	}

	return Stats{
		OpenLeads:       bus.OpenLeads,
		OffersByStatus:  byStatus,
		OverdueInvoices: toAppOverdue(bus.Overdue),
		JobsThisMonth:   toAppJobs(bus.JobsThisMonth),
		MonthStart:      bus.MonthStart.Format(time.RFC3339),
		MonthEnd:        bus.MonthEnd.Format(time.RFC3339),
	}
}

// Calendar maps an ISO date to the jobs of that day.
type Calendar map[string][]Job

// Encode implements the web.Encoder interface.
func (c Calendar) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCalendar(bus dashboardbus.Calendar) Calendar {
	cal := make(Calendar, len(bus))
	for day, jobs := range bus {
		cal[day] = toAppJobs(jobs)
	}
	return cal
}
