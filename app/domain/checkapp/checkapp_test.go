package checkapp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jcpaschoal/wertvoll-dispo/app/domain/checkapp"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/apitest"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handler(t *testing.T, ready error) http.Handler {
	ht := apitest.New(t, nil)

	return ht.App(func(app *web.App) {
		checkapp.Routes(app, checkapp.Config{
			Build: "test",
			Log:   ht.Log,
			Ready: func(context.Context) error { return ready },
		})
	})
}

func TestLiveness(t *testing.T) {
	w := apitest.Do(handler(t, nil), http.MethodGet, "/v1/liveness", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info checkapp.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "up", info.Status)
	assert.Equal(t, "test", info.Build)
	assert.Positive(t, info.GOMAXPROCS)
}

func TestReadiness(t *testing.T) {
	w := apitest.Do(handler(t, nil), http.MethodGet, "/v1/readiness", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = apitest.Do(handler(t, errors.New("connection refused")), http.MethodGet, "/v1/readiness", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
}
