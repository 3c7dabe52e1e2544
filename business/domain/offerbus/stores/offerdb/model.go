package offerdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/shopspring/decimal"
)

type offer struct {
	ID         uuid.UUID           `db:"offer_id"`
	CustomerID uuid.UUID           `db:"customer_id"`
	Status     string              `db:"status"`
	TotalPrice decimal.NullDecimal `db:"total_price"`
	Note       sql.NullString      `db:"note"`
	ValidUntil time.Time           `db:"valid_until"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

func toDBOffer(bus offerbus.Offer) offer {
	return offer{
		ID:         bus.ID,
		CustomerID: bus.CustomerID,
		Status:     bus.Status.String(),
		TotalPrice: bus.TotalPrice,
		Note: sql.NullString{
			String: bus.Note,
			Valid:  bus.Note != "",
		},
		ValidUntil: bus.ValidUntil.UTC(),
		CreatedAt:  bus.CreatedAt.UTC(),
		UpdatedAt:  bus.UpdatedAt.UTC(),
	}
}

func toBusOffer(db offer) (offerbus.Offer, error) {
	status, err := offerstatus.Parse(db.Status)
	if err != nil {
		return offerbus.Offer{}, fmt.Errorf("parse status: %w", err)
	}

	bus := offerbus.Offer{
		ID:         db.ID,
		CustomerID: db.CustomerID,
		Status:     status,
		TotalPrice: db.TotalPrice,
		Note:       db.Note.String,
		ValidUntil: db.ValidUntil.In(time.Local),
		CreatedAt:  db.CreatedAt.In(time.Local),
		UpdatedAt:  db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusOffers(dbs []offer) ([]offerbus.Offer, error) {
	bus := make([]offerbus.Offer, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusOffer(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
