package copilotapp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/app/domain/copilotapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/apitest"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recognizer struct {
	decision copilotbus.Decision
	err      error
	seen     copilotbus.IntentRequest
}

func (r *recognizer) Recognize(_ context.Context, req copilotbus.IntentRequest) (copilotbus.Decision, error) {
	r.seen = req
	return r.decision, r.err
}

type actors map[uuid.UUID]employeebus.Actor

func (a actors) ResolveActor(_ context.Context, userID uuid.UUID) (employeebus.Actor, error) {
	act, ok := a[userID]
	if !ok {
		return employeebus.Actor{}, employeebus.ErrNotFound
	}
	return act, nil
}

type customers struct {
	leads int
}

func (c customers) Create(_ context.Context, nc customerbus.NewCustomer) (customerbus.Customer, error) {
	return customerbus.Customer{ID: uuid.New(), TenantID: nc.TenantID, Name: nc.Name}, nil
}

func (c customers) QueryByNameFragment(context.Context, uuid.UUID, string) ([]customerbus.Customer, error) {
	return nil, nil
}

func (c customers) CountLeads(context.Context, uuid.UUID) (int, error) {
	return c.leads, nil
}

type harness struct {
	handler http.Handler
	rec     *recognizer
	token   string
	stray   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	staff := employeebus.Actor{
		UserID:     uuid.New(),
		EmployeeID: uuid.New(),
		TenantID:   uuid.New(),
		Role:       role.Staff,
	}

	stray := employeebus.Actor{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     role.Dispatcher,
	}

	known := actors{staff.UserID: staff}

	// Auth runs without the employee check so the copilot's own actor
	// resolution can be observed for the stray user.
	ht := apitest.New(t, nil)

	rec := recognizer{}

	bus := copilotbus.NewCore(copilotbus.Config{
		Log:        ht.Log,
		Recognizer: &rec,
		Actors:     known,
		Customers:  customers{leads: 4},
	})

	h := ht.App(func(app *web.App) {
		copilotapp.Routes(app, copilotapp.Config{
			Auth:       ht.Auth,
			CopilotBus: bus,
		})
	})

	return &harness{
		handler: h,
		rec:     &rec,
		token:   ht.Token(t, staff),
		stray:   ht.Token(t, stray),
	}
}

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestProcessMessageText(t *testing.T) {
	h := newHarness(t)
	h.rec.decision = copilotbus.Decision{Text: "Guten Tag! Wie kann ich helfen?"}

	body := `{
		"message": "Hallo",
		"context": [
			{"id": "1", "role": "user", "content": "Vorher", "timestamp": "2025-03-01T09:00:00Z"},
			{"id": "2", "role": "assistant", "content": "Antwort", "timestamp": "2025-03-01T09:00:05Z"}
		]
	}`

	w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", h.token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "Guten Tag! Wie kann ich helfen?", decode(t, w.Body.Bytes())["message"])

	require.Len(t, h.rec.seen.Turns, 3)
	assert.Equal(t, copilotbus.RoleAssistant, h.rec.seen.Turns[1].Role)
	assert.Equal(t, "Hallo", h.rec.seen.Turns[2].Content)
}

func TestProcessMessageAction(t *testing.T) {
	h := newHarness(t)
	h.rec.decision = copilotbus.Decision{Calls: []copilotbus.Invocation{{Name: "get_open_leads", Arguments: "{}"}}}

	w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", h.token, `{"message":"Wie viele offene Leads?"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, decode(t, w.Body.Bytes())["message"], "4 offene Leads")
}

func TestProcessMessageFailures(t *testing.T) {
	t.Run("intent-service", func(t *testing.T) {
		h := newHarness(t)
		h.rec.err = errors.New("dial tcp: i/o timeout")

		w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", h.token, `{"message":"Hallo"}`)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		got := decode(t, w.Body.Bytes())
		assert.Equal(t, "Fehler bei der Verarbeitung Ihrer Anfrage", got["message"])
		assert.NotContains(t, w.Body.String(), "i/o timeout")
	})

	t.Run("no-employee", func(t *testing.T) {
		h := newHarness(t)

		w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", h.stray, `{"message":"Hallo"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "failed_precondition", decode(t, w.Body.Bytes())["code"])
	})

	t.Run("blank-message", func(t *testing.T) {
		h := newHarness(t)

		w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", h.token, `{"message":"   "}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_argument", decode(t, w.Body.Bytes())["code"])
	})

	t.Run("bad-turn-role", func(t *testing.T) {
		h := newHarness(t)

		w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", h.token, `{"message":"Hallo","context":[{"role":"system","content":"x"}]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no-token", func(t *testing.T) {
		h := newHarness(t)

		w := apitest.Do(h.handler, http.MethodPost, "/v1/copilot/messages", "", `{"message":"Hallo"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTools(t *testing.T) {
	h := newHarness(t)

	w := apitest.Do(h.handler, http.MethodGet, "/v1/copilot/tools", h.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []struct {
		Name       string         `json:"name"`
		Parameters map[string]any `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	require.Len(t, got, len(copilotbus.Tools()))
	for _, tool := range got {
		assert.NotEmpty(t, tool.Name)
		assert.Equal(t, "object", tool.Parameters["type"])
	}
}
