package customerapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/phone"
	"github.com/shopspring/decimal"
)

// Customer represents information about an individual customer.
type Customer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone,omitempty"`
	Type        string   `json:"type"`
	Sqm         *float64 `json:"sqm,omitempty"`
	Cbm         *float64 `json:"cbm,omitempty"`
	DateCreated string   `json:"dateCreated"`
	DateUpdated string   `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Customer) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppCustomer(bus customerbus.Customer) Customer {
	return Customer{
		ID:          bus.ID.String(),
		Name:        bus.Name,
		Email:       bus.Email,
		Address:     bus.Address,
		Phone:       bus.Phone.String(),
		Type:        bus.Type.String(),
		Sqm:         toAppMetric(bus.Sqm),
		Cbm:         toAppMetric(bus.Cbm),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppMetric(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}

	f := d.Decimal.InexactFloat64()
	return &f
}

// Summary is a customer row of the paginated listing.
type Summary struct {
	Customer
	OfferCount int `json:"offerCount"`
}

func toAppSummary(bus customerbus.Summary) Summary {
	return Summary{
		Customer:   toAppCustomer(bus.Customer),
		OfferCount: bus.OfferCount,
	}
}

// Offer is an offer as shown with its customer.
type Offer struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	TotalPrice string `json:"totalPrice,omitempty"`
	Note       string `json:"note,omitempty"`
	ValidUntil string `json:"validUntil"`
}

func toAppOffers(bus []offerbus.Offer) []Offer {
	app := make([]Offer, len(bus))
	for i, off := range bus {
		var price string
		if off.TotalPrice.Valid {
			price = off.TotalPrice.Decimal.StringFixed(2)
		}

		app[i] = Offer{
			ID:         off.ID.String(),
			Status:     off.Status.String(),
			TotalPrice: price,
			Note:       off.Note,
			ValidUntil: off.ValidUntil.Format(time.RFC3339),
		}
	}
	return app
}

// Detail is a customer together with its offers.
type Detail struct {
	Customer
	Offers []Offer `json:"offers"`
}

// Encode implements the web.Encoder interface.
func (app Detail) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// =============================================================================

// NewCustomer defines the data needed to add a new customer.
type NewCustomer struct {
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email" validate:"required,email"`
	Address string   `json:"address" validate:"required"`
	Phone   string   `json:"phone"`
	Sqm     *float64 `json:"sqm" validate:"omitempty,gt=0"`
	Cbm     *float64 `json:"cbm" validate:"omitempty,gt=0"`
	Type    string   `json:"type" validate:"omitempty,oneof=PRIVATE BUSINESS"`
}

// Decode implements the web.Decoder interface.
func (app *NewCustomer) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCustomer) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCustomer(tenantID uuid.UUID, app NewCustomer) (customerbus.NewCustomer, error) {
	var typ customertype.CustomerType
	if app.Type != "" {
		var err error
		typ, err = customertype.Parse(app.Type)
		if err != nil {
			return customerbus.NewCustomer{}, fmt.Errorf("parse type: %w", err)
		}
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return customerbus.NewCustomer{}, fmt.Errorf("parse phone: %w", err)
	}

	return customerbus.NewCustomer{
		TenantID: tenantID,
		Name:     app.Name,
		Email:    app.Email,
		Address:  app.Address,
		Phone:    ph,
		Type:     typ,
		Sqm:      toBusMetric(app.Sqm),
		Cbm:      toBusMetric(app.Cbm),
	}, nil
}

func toBusMetric(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

// =============================================================================

// UpdateCustomer defines the data needed to update a customer. Absent
// fields keep their value.
type UpdateCustomer struct {
	Name    *string  `json:"name" validate:"omitempty,min=1"`
	Email   *string  `json:"email" validate:"omitempty,email"`
	Address *string  `json:"address" validate:"omitempty,min=1"`
	Phone   *string  `json:"phone"`
	Sqm     *float64 `json:"sqm" validate:"omitempty,gt=0"`
	Cbm     *float64 `json:"cbm" validate:"omitempty,gt=0"`
	Type    *string  `json:"type" validate:"omitempty,oneof=PRIVATE BUSINESS"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCustomer) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCustomer) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCustomer(app UpdateCustomer) (customerbus.UpdateCustomer, error) {
	uc := customerbus.UpdateCustomer{
		Name:    app.Name,
		Email:   app.Email,
		Address: app.Address,
	}

	if app.Phone != nil {
		ph, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return customerbus.UpdateCustomer{}, fmt.Errorf("parse phone: %w", err)
		}
		uc.Phone = &ph
	}

	if app.Type != nil {
		typ, err := customertype.Parse(*app.Type)
		if err != nil {
			return customerbus.UpdateCustomer{}, fmt.Errorf("parse type: %w", err)
		}
		uc.Type = &typ
	}

	if app.Sqm != nil {
		sqm := toBusMetric(app.Sqm)
		uc.Sqm = &sqm
	}

	if app.Cbm != nil {
		cbm := toBusMetric(app.Cbm)
		uc.Cbm = &cbm
	}

	return uc, nil
}
