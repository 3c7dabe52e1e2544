package copilotbus

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/phone"
	"github.com/shopspring/decimal"
)

func (c *Core) createCustomer(ctx context.Context, actor employeebus.Actor, a CreateCustomer) (Result, error) {
	typ := customertype.Default
	if a.Type != "" {
		parsed, err := customertype.Parse(a.Type)
		if err != nil {
			c.log.Warn(ctx, "copilot: unknown customer type, using default", "type", a.Type, "default", typ)
		} else {
			typ = parsed
		}
	}

	ph, err := phone.ParseNull(a.Phone)
	if err != nil {
		c.log.Warn(ctx, "copilot: phone dropped", "phone", a.Phone, "ERROR", err)
	}

	nc := customerbus.NewCustomer{
		TenantID: actor.TenantID,
		Name:     a.Name,
		Email:    a.Email,
		Address:  a.Address,
		Phone:    ph,
		Type:     typ,
	}

	cus, err := c.customers.Create(ctx, nc)
	if err != nil {
		return Result{}, fmt.Errorf("create customer: %w", err)
	}

	return Result{Message: fmt.Sprintf(msgCustomerCreated, cus.Name)}, nil
}

func (c *Core) createOffer(ctx context.Context, actor employeebus.Actor, a CreateOffer) (Result, error) {
	matches, err := c.customers.QueryByNameFragment(ctx, actor.TenantID, a.CustomerName)
	if err != nil {
		return Result{}, fmt.Errorf("find customer: %w", err)
	}

	if len(matches) == 0 {
		return Result{Message: fmt.Sprintf(msgCustomerNotFound, a.CustomerName)}, nil
	}

	if len(matches) > 1 {
		c.log.Info(ctx, "copilot: ambiguous customer, using first match", "fragment", a.CustomerName, "matches", len(matches))
	}

	cus := matches[0]

	var price decimal.NullDecimal
	if a.TotalPrice != nil {
		price = decimal.NewNullDecimal(decimal.NewFromFloat(*a.TotalPrice))
	}

	no := offerbus.NewOffer{
		CustomerID: cus.ID,
		Status:     offerstatus.Draft,
		TotalPrice: price,
		Note:       a.Note,
		ValidUntil: c.now().Add(offerbus.DefaultValidity),
	}

	if _, err := c.offers.Create(ctx, no); err != nil {
		return Result{}, fmt.Errorf("create offer: %w", err)
	}

	detail := msgOfferNoPrice
	if price.Valid {
		detail = fmt.Sprintf(msgOfferPrice, price.Decimal.StringFixed(2))
	}

	return Result{Message: fmt.Sprintf(msgOfferCreated, cus.Name, detail)}, nil
}

func (c *Core) countOpenLeads(ctx context.Context, actor employeebus.Actor, _ CountOpenLeads) (Result, error) {
	n, err := c.customers.CountLeads(ctx, actor.TenantID)
	if err != nil {
		return Result{}, fmt.Errorf("count leads: %w", err)
	}

	return Result{Message: fmt.Sprintf(msgOpenLeads, n)}, nil
}
