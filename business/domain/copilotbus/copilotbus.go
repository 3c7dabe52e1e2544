// Package copilotbus turns free-form staff requests into domain actions. A
// recognizer picks at most one tool per turn from a fixed registry; the
// dispatcher validates the call, runs it scoped to the actor's company and
// composes the reply.
package copilotbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultTimeout bounds a single recognizer call.
const DefaultTimeout = 30 * time.Second

// Recognizer is the external intent-recognition service.
type Recognizer interface {
	Recognize(ctx context.Context, req IntentRequest) (Decision, error)
}

// ActorResolver maps an authenticated user to the actor behind it.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (employeebus.Actor, error)
}

// CustomerGateway is the customer surface the dispatcher needs.
type CustomerGateway interface {
	Create(ctx context.Context, nc customerbus.NewCustomer) (customerbus.Customer, error)
	QueryByNameFragment(ctx context.Context, tenantID uuid.UUID, fragment string) ([]customerbus.Customer, error)
	CountLeads(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// OfferGateway is the offer surface the dispatcher needs.
type OfferGateway interface {
	Create(ctx context.Context, no offerbus.NewOffer) (offerbus.Offer, error)
}

// Config holds the collaborators of the engine. Timeout, Now and Persona
// fall back to defaults when zero.
type Config struct {
	Log        *logger.Logger
	Recognizer Recognizer
	Actors     ActorResolver
	Customers  CustomerGateway
	Offers     OfferGateway
	Persona    Persona
	Timeout    time.Duration
	Now        func() time.Time
}

// Core manages the set of APIs for the copilot.
type Core struct {
	log        *logger.Logger
	recognizer Recognizer
	actors     ActorResolver
	customers  CustomerGateway
	offers     OfferGateway
	persona    Persona
	timeout    time.Duration
	now        func() time.Time
}

var _ handler = (*Core)(nil)

// NewCore constructs a copilot core API for use.
func NewCore(cfg Config) *Core {
	c := Core{
		log:        cfg.Log,
		recognizer: cfg.Recognizer,
		actors:     cfg.Actors,
		customers:  cfg.Customers,
		offers:     cfg.Offers,
		persona:    cfg.Persona,
		timeout:    cfg.Timeout,
		now:        cfg.Now,
	}

	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	if c.now == nil {
		c.now = time.Now
	}

	if c.persona.Company == "" {
		c.persona = DefaultPersona()
	}

	return &c
}

// ResolveActor returns the actor behind the user. A user without an employee
// record yields ErrActorNotFound.
func (c *Core) ResolveActor(ctx context.Context, userID uuid.UUID) (employeebus.Actor, error) {
	ctx, span := otel.AddSpan(ctx, "business.copilotbus.resolveactor")
	defer span.End()

	actor, err := c.actors.ResolveActor(ctx, userID)
	if err != nil {
		if errors.Is(err, employeebus.ErrNotFound) {
			return employeebus.Actor{}, fmt.Errorf("resolveactor: userID[%s]: %w", userID, ErrActorNotFound)
		}
		return employeebus.Actor{}, fmt.Errorf("resolveactor: %w", err)
	}

	return actor, nil
}

// ProcessMessage answers one staff request. It always yields exactly one
// message unless the actor cannot be resolved, the recognizer fails, or a
// store is unreachable.
func (c *Core) ProcessMessage(ctx context.Context, userID uuid.UUID, msg Message) (Result, error) {
	ctx, span := otel.AddSpan(ctx, "business.copilotbus.processmessage")
	defer span.End()

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return Result{}, fmt.Errorf("processmessage: %w", ErrEmptyMessage)
	}

	actor, err := c.ResolveActor(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("processmessage: %w", err)
	}

	req := IntentRequest{
		System: c.persona.SystemPrompt(),
		Turns:  buildTurns(msg.History, text, c.now()),
		Tools:  Tools(),
	}

	decision, err := c.recognize(ctx, req)
	if err != nil {
		c.log.Error(ctx, "copilot: intent service", "tenant_id", actor.TenantID, "ERROR", err)
		return Result{}, fmt.Errorf("processmessage: %w: %w", ErrIntentService, err)
	}

	if len(decision.Calls) == 0 {
		reply := strings.TrimSpace(decision.Text)
		if reply == "" {
			reply = c.persona.Fallback
		}
		return Result{Message: reply}, nil
	}

	if len(decision.Calls) > 1 {
		names := make([]string, len(decision.Calls))
		for i, call := range decision.Calls {
			names[i] = call.Name
		}
		c.log.Info(ctx, "copilot: multiple calls proposed, honoring the first", "calls", names)
	}

	return c.Dispatch(ctx, actor, decision.Calls[0])
}

func (c *Core) recognize(ctx context.Context, req IntentRequest) (Decision, error) {
	ctx, span := otel.AddSpan(ctx, "business.copilotbus.recognize", attribute.Int("turns", len(req.Turns)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.recognizer.Recognize(ctx, req)
}

// Dispatch runs one proposed call for the actor. Unknown tools and business
// outcomes produce a result; only store failures are returned as errors.
func (c *Core) Dispatch(ctx context.Context, actor employeebus.Actor, inv Invocation) (Result, error) {
	ctx, span := otel.AddSpan(ctx, "business.copilotbus.dispatch", attribute.String("tool", inv.Name))
	defer span.End()

	t, exists := lookup(inv.Name)
	if !exists {
		c.log.Info(ctx, "copilot: unknown tool", "tool", inv.Name)
		return Result{Message: msgNotImplemented}, nil
	}

	args, err := parseArguments(inv.Arguments)
	if err != nil {
		c.log.Warn(ctx, "copilot: unreadable arguments, continuing with defaults", "tool", inv.Name, "ERROR", err)
	}

	action, short := t.decode(args)
	if len(short) > 0 {
		c.log.Warn(ctx, "copilot: argument shortfall", "tool", inv.Name, "fields", short)
	}

	res, err := action.dispatch(ctx, c, actor)
	if err != nil {
		if rejected(err) {
			c.log.Warn(ctx, "copilot: store rejected action", "tool", inv.Name, "ERROR", err)
			return Result{Message: msgRejected, Action: inv.Name}, nil
		}
		return Result{}, fmt.Errorf("dispatch: %s: %w", inv.Name, err)
	}

	res.Action = inv.Name

	return res, nil
}

// rejected reports whether a store refused a write because of its contents.
func rejected(err error) bool {
	return errors.Is(err, customerbus.ErrInvalid) || errors.Is(err, offerbus.ErrInvalid)
}

// buildTurns drops empty prior turns and appends the utterance as the final
// user turn.
func buildTurns(history []Turn, text string, now time.Time) []Turn {
	turns := make([]Turn, 0, len(history)+1)

	for _, t := range history {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		if t.Role != RoleAssistant {
			t.Role = RoleUser
		}
		turns = append(turns, t)
	}

	turns = append(turns, Turn{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: now,
	})

	return turns
}
