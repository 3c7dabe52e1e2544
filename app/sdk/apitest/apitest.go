// Package apitest provides support for exercising app routes in tests.
package apitest

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/keystore"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	kid    = "apitest"
	issuer = "wertvoll-dispo apitest"
)

// Harness holds an auth value backed by a throwaway key.
type Harness struct {
	Log  *logger.Logger
	Auth *auth.Auth
}

// New constructs a harness. Actors may be nil to skip the employee lookup.
func New(t *testing.T, actors auth.ActorResolver) *Harness {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %s", err)
	}

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(pk),
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(fstest.MapFS{kid + ".pem": {Data: pem.EncodeToMemory(&block)}}); err != nil {
		t.Fatalf("loading key: %s", err)
	}

	log := logger.New(io.Discard, logger.LevelDebug, "APITEST", func(context.Context) string { return "" })

	ath, err := auth.New(auth.Config{
		Log:       log,
		KeyLookup: ks,
		Actors:    actors,
		Issuer:    issuer,
	})
	if err != nil {
		t.Fatalf("constructing auth: %s", err)
	}

	return &Harness{
		Log:  log,
		Auth: ath,
	}
}

// Token returns a bearer token for the actor.
func (h *Harness) Token(t *testing.T, actor employeebus.Actor) string {
	t.Helper()

	token, err := h.Auth.GenerateToken(kid, actor)
	if err != nil {
		t.Fatalf("generating token: %s", err)
	}

	return token
}

// App returns a web app with the error handling middleware and the routes
// bound by the add function.
func (h *Harness) App(add func(app *web.App)) http.Handler {
	app := web.NewApp(h.Log.Info, noop.NewTracerProvider().Tracer("apitest"), mid.Errors(h.Log), mid.Panics(h.Log))
	add(app)
	return app
}

// Do sends the request to the handler. An empty token sends no
// Authorization header.
func Do(h http.Handler, method string, path string, token string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	switch body {
	case "":
		r = httptest.NewRequest(method, path, nil)
	default:
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}
