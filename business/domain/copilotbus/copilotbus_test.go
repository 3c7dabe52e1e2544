package copilotbus_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted is a deterministic recognizer that replays canned decisions and
// records every request it receives.
type scripted struct {
	mu        sync.Mutex
	decisions []copilotbus.Decision
	err       error
	block     bool
	requests  []copilotbus.IntentRequest
}

func (s *scripted) Recognize(ctx context.Context, req copilotbus.IntentRequest) (copilotbus.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)

	if s.block {
		<-ctx.Done()
		return copilotbus.Decision{}, ctx.Err()
	}

	if s.err != nil {
		return copilotbus.Decision{}, s.err
	}

	if len(s.decisions) == 0 {
		return copilotbus.Decision{}, nil
	}

	d := s.decisions[0]
	s.decisions = s.decisions[1:]

	return d, nil
}

func call(name string, args string) copilotbus.Decision {
	return copilotbus.Decision{Calls: []copilotbus.Invocation{{Name: name, Arguments: args}}}
}

// =============================================================================

type actors map[uuid.UUID]employeebus.Actor

func (a actors) ResolveActor(_ context.Context, userID uuid.UUID) (employeebus.Actor, error) {
	actor, exists := a[userID]
	if !exists {
		return employeebus.Actor{}, employeebus.ErrNotFound
	}
	return actor, nil
}

// gateway keeps customers and offers in memory with the same rules as the
// SQL stores: creation order, tenant scope and the non-empty name check.
type gateway struct {
	customers []customerbus.Customer
	offers    []offerbus.Offer
	failWith  error
}

func (g *gateway) Create(_ context.Context, nc customerbus.NewCustomer) (customerbus.Customer, error) {
	if g.failWith != nil {
		return customerbus.Customer{}, g.failWith
	}
	for _, v := range []string{nc.Name, nc.Email, nc.Address} {
		if strings.TrimSpace(v) == "" {
			return customerbus.Customer{}, customerbus.ErrInvalid
		}
	}

	cus := customerbus.Customer{
		ID:        uuid.New(),
		TenantID:  nc.TenantID,
		Name:      nc.Name,
		Email:     nc.Email,
		Address:   nc.Address,
		Phone:     nc.Phone,
		Type:      nc.Type,
		CreatedAt: time.Now(),
	}
	g.customers = append(g.customers, cus)

	return cus, nil
}

func (g *gateway) QueryByNameFragment(_ context.Context, tenantID uuid.UUID, fragment string) ([]customerbus.Customer, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	if fragment == "" {
		return nil, nil
	}

	var out []customerbus.Customer
	for _, c := range g.customers {
		if c.TenantID == tenantID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (g *gateway) CountLeads(_ context.Context, tenantID uuid.UUID) (int, error) {
	if g.failWith != nil {
		return 0, g.failWith
	}

	var n int
	for _, c := range g.customers {
		if c.TenantID != tenantID {
			continue
		}
		hasOffer := false
		for _, o := range g.offers {
			if o.CustomerID == c.ID {
				hasOffer = true
				break
			}
		}
		if !hasOffer {
			n++
		}
	}
	return n, nil
}

type offers struct {
	g *gateway
}

func (o offers) Create(_ context.Context, no offerbus.NewOffer) (offerbus.Offer, error) {
	off := offerbus.Offer{
		ID:         uuid.New(),
		CustomerID: no.CustomerID,
		Status:     no.Status,
		TotalPrice: no.TotalPrice,
		Note:       no.Note,
		ValidUntil: no.ValidUntil,
	}
	o.g.offers = append(o.g.offers, off)
	return off, nil
}

// =============================================================================

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

type harness struct {
	core   *copilotbus.Core
	rec    *scripted
	gw     *gateway
	userID uuid.UUID
	actor  employeebus.Actor
	logs   *bytes.Buffer
}

func newHarness(t *testing.T, decisions ...copilotbus.Decision) *harness {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelDebug, "TEST", func(context.Context) string { return "" })

	userID := uuid.New()
	actor := employeebus.Actor{
		UserID:     userID,
		EmployeeID: uuid.New(),
		TenantID:   uuid.New(),
		Role:       role.Dispatcher,
	}

	rec := &scripted{decisions: decisions}
	gw := &gateway{}

	core := copilotbus.NewCore(copilotbus.Config{
		Log:        log,
		Recognizer: rec,
		Actors:     actors{userID: actor},
		Customers:  gw,
		Offers:     offers{g: gw},
		Timeout:    time.Second,
		Now:        func() time.Time { return fixedNow },
	})

	return &harness{
		core:   core,
		rec:    rec,
		gw:     gw,
		userID: userID,
		actor:  actor,
		logs:   &buf,
	}
}

func (h *harness) addCustomer(tenantID uuid.UUID, name string) customerbus.Customer {
	cus := customerbus.Customer{ID: uuid.New(), TenantID: tenantID, Name: name, Type: customertype.Private}
	h.gw.customers = append(h.gw.customers, cus)
	return cus
}

func (h *harness) send(t *testing.T, text string) copilotbus.Result {
	t.Helper()

	res, err := h.core.ProcessMessage(context.Background(), h.userID, copilotbus.Message{Text: text})
	require.NoError(t, err)

	return res
}

// =============================================================================

func TestCreateOfferFuzzyMatch(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"abc","totalPrice":1200.5,"note":"3. OG ohne Aufzug"}`))
	cus := h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Erstelle ein Angebot für ABC über 1200,50 €")

	assert.Equal(t, `Angebot für "Firma ABC GmbH" wurde erstellt. Gesamtpreis: 1200.50 €`, res.Message)
	assert.Equal(t, "create_offer", res.Action)

	require.Len(t, h.gw.offers, 1)
	off := h.gw.offers[0]
	assert.Equal(t, cus.ID, off.CustomerID)
	assert.Equal(t, offerstatus.Draft, off.Status)
	assert.Equal(t, "1200.5", off.TotalPrice.Decimal.String())
	assert.Equal(t, "3. OG ohne Aufzug", off.Note)
	assert.Equal(t, fixedNow.Add(14*24*time.Hour), off.ValidUntil)
}

func TestCreateOfferUnknownCustomer(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"Nonexistent"}`))
	h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Angebot für Nonexistent")

	assert.Equal(t, `Kunde "Nonexistent" wurde nicht gefunden. Bitte legen Sie den Kunden zuerst an.`, res.Message)
	assert.Empty(t, h.gw.offers)
}

func TestCreateOfferIgnoresOtherTenants(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"ABC"}`))
	h.addCustomer(uuid.New(), "Firma ABC GmbH")

	res := h.send(t, "Angebot für ABC")

	assert.Contains(t, res.Message, "wurde nicht gefunden")
	assert.Empty(t, h.gw.offers)
}

func TestCreateOfferFirstMatchWins(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"Müller"}`))
	first := h.addCustomer(h.actor.TenantID, "Müller Umzüge")
	h.addCustomer(h.actor.TenantID, "Hans Müller")

	res := h.send(t, "Angebot für Müller")

	assert.Equal(t, `Angebot für "Müller Umzüge" wurde erstellt. Preis noch nicht festgelegt.`, res.Message)
	require.Len(t, h.gw.offers, 1)
	assert.Equal(t, first.ID, h.gw.offers[0].CustomerID)
	assert.Contains(t, h.logs.String(), "ambiguous customer")
}

func TestCreateOfferEmptyReference(t *testing.T) {
	h := newHarness(t, call("create_offer", `{}`))
	h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Mach ein Angebot")

	assert.Equal(t, `Kunde "" wurde nicht gefunden. Bitte legen Sie den Kunden zuerst an.`, res.Message)
	assert.Empty(t, h.gw.offers)
}

func TestCreateOfferWithoutPrice(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"ABC"}`))
	h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Angebot für ABC")

	assert.Equal(t, `Angebot für "Firma ABC GmbH" wurde erstellt. Preis noch nicht festgelegt.`, res.Message)
	require.Len(t, h.gw.offers, 1)
	assert.False(t, h.gw.offers[0].TotalPrice.Valid)
}

func TestCreateOfferZeroPriceIsSupplied(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"ABC","totalPrice":0}`))
	h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Kostenloses Angebot für ABC")

	assert.Equal(t, `Angebot für "Firma ABC GmbH" wurde erstellt. Gesamtpreis: 0.00 €`, res.Message)
	require.Len(t, h.gw.offers, 1)
	assert.True(t, h.gw.offers[0].TotalPrice.Valid)
}

func TestCreateOfferPriceAsText(t *testing.T) {
	h := newHarness(t, call("create_offer", `{"customerName":"ABC","totalPrice":"99,5 €"}`))
	h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Angebot für ABC über 99,50")

	assert.Equal(t, `Angebot für "Firma ABC GmbH" wurde erstellt. Gesamtpreis: 99.50 €`, res.Message)
}

func TestCreateCustomerDefaultsToPrivate(t *testing.T) {
	h := newHarness(t, call("create_customer", `{"name":"Erika Mustermann","email":"erika@example.de","address":"Hauptstr. 1, 10115 Berlin"}`))

	res := h.send(t, "Lege Erika Mustermann an")

	assert.Equal(t, `Kunde "Erika Mustermann" wurde erfolgreich angelegt.`, res.Message)
	require.Len(t, h.gw.customers, 1)

	cus := h.gw.customers[0]
	assert.Equal(t, customertype.Private, cus.Type)
	assert.Equal(t, h.actor.TenantID, cus.TenantID)
	assert.False(t, cus.Phone.Valid())
}

func TestCreateCustomerBusiness(t *testing.T) {
	h := newHarness(t, call("create_customer", `{"name":"Firma ABC GmbH","email":"info@abc.de","address":"Industriestr. 5","phone":"+49 30 1234567","type":"business"}`))

	h.send(t, "Neuer Geschäftskunde ABC")

	require.Len(t, h.gw.customers, 1)
	assert.Equal(t, customertype.Business, h.gw.customers[0].Type)
	assert.Equal(t, "+49301234567", h.gw.customers[0].Phone.String())
}

func TestCreateCustomerForgivesShortfalls(t *testing.T) {
	h := newHarness(t, call("create_customer", `{"name":"Max","email":"max@example.de","address":"Ringstr. 2","type":"ALIEN","phone":{"nr":1}}`))

	res := h.send(t, "Lege Max an")

	assert.Equal(t, `Kunde "Max" wurde erfolgreich angelegt.`, res.Message)
	require.Len(t, h.gw.customers, 1)
	assert.Equal(t, customertype.Private, h.gw.customers[0].Type)
	assert.False(t, h.gw.customers[0].Phone.Valid())
	assert.Contains(t, h.logs.String(), "argument shortfall")
}

func TestCreateCustomerWithoutContactRejected(t *testing.T) {
	h := newHarness(t, call("create_customer", `{"name":"Max","type":"ALIEN","email":42}`))

	res := h.send(t, "Lege Max an")

	assert.Equal(t, "Die Aktion konnte nicht ausgeführt werden. Bitte prüfen Sie die Angaben.", res.Message)
	assert.Empty(t, h.gw.customers)
}

func TestCreateCustomerRejectedByStore(t *testing.T) {
	h := newHarness(t, call("create_customer", `{"email":"x@y.de"}`))

	res := h.send(t, "Lege einen Kunden an")

	assert.Equal(t, "Die Aktion konnte nicht ausgeführt werden. Bitte prüfen Sie die Angaben.", res.Message)
	assert.Empty(t, h.gw.customers)
}

func TestUnreadableArgumentsUseDefaults(t *testing.T) {
	h := newHarness(t, call("get_open_leads", `{not json`))

	res := h.send(t, "Wie viele Leads?")

	assert.Equal(t, "Sie haben aktuell 0 offene Leads (Kunden ohne Angebot).", res.Message)
}

func TestCountOpenLeads(t *testing.T) {
	h := newHarness(t, call("get_open_leads", `{}`))

	h.addCustomer(h.actor.TenantID, "Ohne Angebot 1")
	h.addCustomer(h.actor.TenantID, "Ohne Angebot 2")
	withOffer := h.addCustomer(h.actor.TenantID, "Mit Angebot")
	h.addCustomer(uuid.New(), "Fremder Mandant")

	h.gw.offers = append(h.gw.offers, offerbus.Offer{ID: uuid.New(), CustomerID: withOffer.ID, Status: offerstatus.Rejected})

	res := h.send(t, "Wie viele offene Leads habe ich?")

	assert.Equal(t, "Sie haben aktuell 2 offene Leads (Kunden ohne Angebot).", res.Message)
}

func TestUnknownAction(t *testing.T) {
	h := newHarness(t, call("delete_everything", `{}`))
	h.addCustomer(h.actor.TenantID, "Firma ABC GmbH")

	res := h.send(t, "Lösche alles")

	assert.Equal(t, "Diese Funktion ist noch nicht implementiert.", res.Message)
	assert.Empty(t, res.Action)
	assert.Len(t, h.gw.customers, 1)
	assert.Empty(t, h.gw.offers)
	assert.NotContains(t, h.logs.String(), `"level":"ERROR"`)
}

func TestOnlyFirstCallRuns(t *testing.T) {
	decision := copilotbus.Decision{Calls: []copilotbus.Invocation{
		{Name: "create_customer", Arguments: `{"name":"Eins","email":"a@b.de","address":"X"}`},
		{Name: "create_customer", Arguments: `{"name":"Zwei","email":"c@d.de","address":"Y"}`},
	}}

	h := newHarness(t, decision)

	res := h.send(t, "Lege Eins und Zwei an")

	assert.Equal(t, `Kunde "Eins" wurde erfolgreich angelegt.`, res.Message)
	require.Len(t, h.gw.customers, 1)
	assert.Equal(t, "Eins", h.gw.customers[0].Name)
}

func TestTextReply(t *testing.T) {
	h := newHarness(t, copilotbus.Decision{Text: "Gern, welcher Kunde?"})

	res := h.send(t, "Ich brauche ein Angebot")

	assert.Equal(t, "Gern, welcher Kunde?", res.Message)
	assert.Empty(t, res.Action)
}

func TestFallbackReply(t *testing.T) {
	h := newHarness(t, copilotbus.Decision{})

	res := h.send(t, "Hallo")

	assert.Equal(t, "Ich verstehe Ihre Anfrage. Wie kann ich Ihnen helfen?", res.Message)
}

func TestRequestComposition(t *testing.T) {
	h := newHarness(t, copilotbus.Decision{Text: "ok"})

	history := []copilotbus.Turn{
		{ID: "1", Role: copilotbus.RoleUser, Content: "Hallo"},
		{ID: "2", Role: copilotbus.RoleAssistant, Content: "Guten Tag!"},
		{ID: "3", Role: copilotbus.RoleUser, Content: "   "},
	}

	_, err := h.core.ProcessMessage(context.Background(), h.userID, copilotbus.Message{Text: "  Wie viele Leads?  ", History: history})
	require.NoError(t, err)

	require.Len(t, h.rec.requests, 1)
	req := h.rec.requests[0]

	assert.Contains(t, req.System, "Wertvoll Dienstleistungen GmbH")
	assert.Contains(t, req.System, "Deutsch")

	require.Len(t, req.Turns, 3)
	assert.Equal(t, "Hallo", req.Turns[0].Content)
	assert.Equal(t, copilotbus.RoleAssistant, req.Turns[1].Role)
	assert.Equal(t, copilotbus.RoleUser, req.Turns[2].Role)
	assert.Equal(t, "Wie viele Leads?", req.Turns[2].Content)

	tools := copilotbus.Tools()
	require.Len(t, req.Tools, len(tools))
	for i := range tools {
		assert.Equal(t, tools[i].Name, req.Tools[i].Name)
	}
}

func TestActorNotFoundAbortsTurn(t *testing.T) {
	h := newHarness(t, copilotbus.Decision{Text: "Hallo!"})

	_, err := h.core.ProcessMessage(context.Background(), uuid.New(), copilotbus.Message{Text: "Hallo"})

	assert.ErrorIs(t, err, copilotbus.ErrActorNotFound)
	assert.Empty(t, h.rec.requests)
}

func TestEmptyMessage(t *testing.T) {
	h := newHarness(t)

	_, err := h.core.ProcessMessage(context.Background(), h.userID, copilotbus.Message{Text: " \n "})

	assert.ErrorIs(t, err, copilotbus.ErrEmptyMessage)
	assert.Empty(t, h.rec.requests)
}

func TestIntentServiceFailure(t *testing.T) {
	h := newHarness(t)
	h.rec.err = errors.New("status code: 502")

	_, err := h.core.ProcessMessage(context.Background(), h.userID, copilotbus.Message{Text: "Hallo"})

	assert.ErrorIs(t, err, copilotbus.ErrIntentService)
	assert.Contains(t, h.logs.String(), "intent service")
}

func TestIntentServiceTimeout(t *testing.T) {
	h := newHarness(t)
	h.rec.block = true

	core := copilotbus.NewCore(copilotbus.Config{
		Log:        logger.New(h.logs, logger.LevelInfo, "TEST", func(context.Context) string { return "" }),
		Recognizer: h.rec,
		Actors:     actors{h.userID: h.actor},
		Customers:  h.gw,
		Offers:     offers{g: h.gw},
		Timeout:    20 * time.Millisecond,
	})

	start := time.Now()
	_, err := core.ProcessMessage(context.Background(), h.userID, copilotbus.Message{Text: "Hallo"})

	assert.ErrorIs(t, err, copilotbus.ErrIntentService)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStoreFailurePropagates(t *testing.T) {
	h := newHarness(t, call("get_open_leads", `{}`))
	h.gw.failWith = errors.New("connection reset by peer")

	_, err := h.core.ProcessMessage(context.Background(), h.userID, copilotbus.Message{Text: "Leads?"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, copilotbus.ErrIntentService)
	assert.ErrorContains(t, err, "connection reset by peer")
}

func TestDispatchDirect(t *testing.T) {
	h := newHarness(t)

	res, err := h.core.Dispatch(context.Background(), h.actor, copilotbus.Invocation{Name: "get_open_leads"})
	require.NoError(t, err)

	assert.Equal(t, "Sie haben aktuell 0 offene Leads (Kunden ohne Angebot).", res.Message)
	assert.Equal(t, "get_open_leads", res.Action)
}
