package jobdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/jobbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/shopspring/decimal"
)

// jobRow is one row of the flattened job query: a job repeats once per
// member of its team.
type jobRow struct {
	ID              uuid.UUID           `db:"job_id"`
	Date            time.Time           `db:"date"`
	OfferID         uuid.UUID           `db:"offer_id"`
	OfferStatus     string              `db:"offer_status"`
	OfferTotalPrice decimal.NullDecimal `db:"offer_total_price"`
	CustomerID      uuid.UUID           `db:"customer_id"`
	CustomerName    string              `db:"customer_name"`
	CustomerAddress string              `db:"customer_address"`
	CustomerPhone   sql.NullString      `db:"customer_phone"`
	VehicleID       uuid.NullUUID       `db:"vehicle_id"`
	VehicleName     sql.NullString      `db:"vehicle_name"`
	VehiclePlate    sql.NullString      `db:"vehicle_plate"`
	TeamID          uuid.NullUUID       `db:"team_id"`
	TeamName        sql.NullString      `db:"team_name"`
	MemberID        uuid.NullUUID       `db:"member_id"`
	MemberName      sql.NullString      `db:"member_name"`
}

// toBusJobs folds the flattened rows back into jobs. Rows of one job are
// adjacent and the order of first appearance is kept.
func toBusJobs(rows []jobRow) ([]jobbus.Job, error) {
	var jobs []jobbus.Job
	index := make(map[uuid.UUID]int)

	for _, row := range rows {
		i, exists := index[row.ID]
		if !exists {
			job, err := toBusJob(row)
			if err != nil {
				return nil, err
			}

			jobs = append(jobs, job)
			i = len(jobs) - 1
			index[row.ID] = i
		}

		if row.MemberID.Valid && jobs[i].Team != nil {
			jobs[i].Team.Members = append(jobs[i].Team.Members, jobbus.Member{
				EmployeeID: row.MemberID.UUID,
				Name:       row.MemberName.String,
			})
		}
	}

	return jobs, nil
}

func toBusJob(row jobRow) (jobbus.Job, error) {
	status, err := offerstatus.Parse(row.OfferStatus)
	if err != nil {
		return jobbus.Job{}, fmt.Errorf("parse offer status: %w", err)
	}

	job := jobbus.Job{
		ID:   row.ID,
		Date: row.Date.In(time.Local),
		Offer: jobbus.OfferRef{
			ID:         row.OfferID,
			Status:     status,
			TotalPrice: row.OfferTotalPrice,
		},
		Customer: jobbus.CustomerRef{
			ID:      row.CustomerID,
			Name:    row.CustomerName,
			Address: row.CustomerAddress,
			Phone:   row.CustomerPhone.String,
		},
	}

	if row.VehicleID.Valid {
		job.Vehicle = &jobbus.Vehicle{
			ID:           row.VehicleID.UUID,
			Name:         row.VehicleName.String,
			LicensePlate: row.VehiclePlate.String,
		}
	}

	if row.TeamID.Valid {
		job.Team = &jobbus.Team{
			ID:   row.TeamID.UUID,
			Name: row.TeamName.String,
		}
	}

	return job, nil
}
