package customerdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/phone"
	"github.com/shopspring/decimal"
)

type customer struct {
	ID        uuid.UUID           `db:"customer_id"`
	TenantID  uuid.UUID           `db:"tenant_id"`
	Name      string              `db:"name"`
	Email     string              `db:"email"`
	Address   string              `db:"address"`
	Phone     sql.NullString      `db:"phone"`
	Type      string              `db:"type"`
	Sqm       decimal.NullDecimal `db:"sqm"`
	Cbm       decimal.NullDecimal `db:"cbm"`
	CreatedAt time.Time           `db:"created_at"`
	UpdatedAt time.Time           `db:"updated_at"`
}

type summary struct {
	customer
	OfferCount int `db:"offer_count"`
}

func toDBCustomer(bus customerbus.Customer) customer {
	return customer{
		ID:        bus.ID,
		TenantID:  bus.TenantID,
		Name:      bus.Name,
		Email:     bus.Email,
		Address:   bus.Address,
		Phone:     phone.ToSQLNullString(bus.Phone),
		Type:      bus.Type.String(),
		Sqm:       bus.Sqm,
		Cbm:       bus.Cbm,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusCustomer(db customer) (customerbus.Customer, error) {
	typ, err := customertype.Parse(db.Type)
	if err != nil {
		return customerbus.Customer{}, fmt.Errorf("parse type: %w", err)
	}

	bus := customerbus.Customer{
		ID:        db.ID,
		TenantID:  db.TenantID,
		Name:      db.Name,
		Email:     db.Email,
		Address:   db.Address,
		Phone:     phone.FromSQLNullString(db.Phone),
		Type:      typ,
		Sqm:       db.Sqm,
		Cbm:       db.Cbm,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusCustomers(dbs []customer) ([]customerbus.Customer, error) {
	bus := make([]customerbus.Customer, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusCustomer(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

func toBusSummaries(dbs []summary) ([]customerbus.Summary, error) {
	bus := make([]customerbus.Summary, len(dbs))

	for i, db := range dbs {
		cus, err := toBusCustomer(db.customer)
		if err != nil {
			return nil, err
		}

		bus[i] = customerbus.Summary{
			Customer:   cus,
			OfferCount: db.OfferCount,
		}
	}

	return bus, nil
}
