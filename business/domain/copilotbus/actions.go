package copilotbus

import (
	"context"
	"strings"

	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
)

// Action is a decoded tool call. The set of actions is closed: every variant
// is declared in this package and dispatches to exactly one handler method.
type Action interface {
	ToolName() string
	dispatch(ctx context.Context, h handler, actor employeebus.Actor) (Result, error)
}

// handler has one method per Action variant. Core implements it.
type handler interface {
	createCustomer(ctx context.Context, actor employeebus.Actor, a CreateCustomer) (Result, error)
	createOffer(ctx context.Context, actor employeebus.Actor, a CreateOffer) (Result, error)
	countOpenLeads(ctx context.Context, actor employeebus.Actor, a CountOpenLeads) (Result, error)
}

// =============================================================================

// CreateCustomer creates a customer in the actor's company.
type CreateCustomer struct {
	Name    string `json:"name" jsonschema:"required" jsonschema_description:"Name des Kunden" validate:"required"`
	Email   string `json:"email" jsonschema:"required" jsonschema_description:"E-Mail-Adresse" validate:"required,email"`
	Address string `json:"address" jsonschema:"required" jsonschema_description:"Adresse" validate:"required"`
	Phone   string `json:"phone,omitempty" jsonschema_description:"Telefonnummer (optional)"`
	Type    string `json:"type,omitempty" jsonschema:"enum=PRIVATE,enum=BUSINESS" jsonschema_description:"Kundentyp" validate:"omitempty,oneof=PRIVATE BUSINESS"`
}

// ToolName implements Action.
func (CreateCustomer) ToolName() string { return "create_customer" }

func (a CreateCustomer) dispatch(ctx context.Context, h handler, actor employeebus.Actor) (Result, error) {
	return h.createCustomer(ctx, actor, a)
}

func (a *CreateCustomer) fromArguments(args arguments) []string {
	var short []string

	a.Name = args.text("name", &short)
	a.Email = args.text("email", &short)
	a.Address = args.text("address", &short)
	a.Phone = args.text("phone", &short)
	a.Type = strings.ToUpper(args.text("type", &short))

	return short
}

// =============================================================================

// CreateOffer creates a draft offer for the first customer whose name
// contains CustomerName.
type CreateOffer struct {
	CustomerName string   `json:"customerName" jsonschema:"required" jsonschema_description:"Name des Kunden" validate:"required"`
	TotalPrice   *float64 `json:"totalPrice,omitempty" jsonschema_description:"Gesamtpreis" validate:"omitempty,gte=0"`
	Note         string   `json:"note,omitempty" jsonschema_description:"Notizen zum Angebot"`
}

// ToolName implements Action.
func (CreateOffer) ToolName() string { return "create_offer" }

func (a CreateOffer) dispatch(ctx context.Context, h handler, actor employeebus.Actor) (Result, error) {
	return h.createOffer(ctx, actor, a)
}

func (a *CreateOffer) fromArguments(args arguments) []string {
	var short []string

	a.CustomerName = args.text("customerName", &short)
	a.TotalPrice = args.number("totalPrice", &short)
	a.Note = args.text("note", &short)

	return short
}

// =============================================================================

// CountOpenLeads counts the customers of the actor's company without offers.
type CountOpenLeads struct{}

// ToolName implements Action.
func (CountOpenLeads) ToolName() string { return "get_open_leads" }

func (a CountOpenLeads) dispatch(ctx context.Context, h handler, actor employeebus.Actor) (Result, error) {
	return h.countOpenLeads(ctx, actor, a)
}

func (a *CountOpenLeads) fromArguments(arguments) []string {
	return nil
}
