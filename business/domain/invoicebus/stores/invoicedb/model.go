package invoicedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/invoicebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/invoicestatus"
	"github.com/shopspring/decimal"
)

type overdue struct {
	ID           uuid.UUID       `db:"invoice_id"`
	JobID        uuid.UUID       `db:"job_id"`
	Number       string          `db:"number"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`
	DueDate      time.Time       `db:"due_date"`
	CreatedAt    time.Time       `db:"created_at"`
	JobDate      time.Time       `db:"job_date"`
	OfferID      uuid.UUID       `db:"offer_id"`
	CustomerID   uuid.UUID       `db:"customer_id"`
	CustomerName string          `db:"customer_name"`
}

func toBusOverdue(db overdue) (invoicebus.Overdue, error) {
	status, err := invoicestatus.Parse(db.Status)
	if err != nil {
		return invoicebus.Overdue{}, fmt.Errorf("parse status: %w", err)
	}

	bus := invoicebus.Overdue{
		Invoice: invoicebus.Invoice{
			ID:        db.ID,
			JobID:     db.JobID,
			Number:    db.Number,
			Amount:    db.Amount,
			Status:    status,
			DueDate:   db.DueDate.In(time.Local),
			CreatedAt: db.CreatedAt.In(time.Local),
		},
		JobDate:      db.JobDate.In(time.Local),
		OfferID:      db.OfferID,
		CustomerID:   db.CustomerID,
		CustomerName: db.CustomerName,
	}

	return bus, nil
}

func toBusOverdues(dbs []overdue) ([]invoicebus.Overdue, error) {
	bus := make([]invoicebus.Overdue, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusOverdue(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
