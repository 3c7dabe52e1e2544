// Package copilotapp maintains the app layer api for the copilot.
package copilotapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/metrics"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
)

// Messages returned instead of internal failures.
const (
	msgServiceFailure = "Fehler bei der Verarbeitung Ihrer Anfrage"
	msgNoEmployee     = "Für diesen Benutzer ist kein Mitarbeiterprofil hinterlegt."
)

type app struct {
	copilotBus *copilotbus.Core
}

func newApp(copilotBus *copilotbus.Core) *app {
	return &app{
		copilotBus: copilotBus,
	}
}

// processMessage answers one staff request.
func (a *app) processMessage(ctx context.Context, r *http.Request) web.Encoder {
	var req NewMessage
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	res, err := a.copilotBus.ProcessMessage(ctx, userID, toBusMessage(req))
	if err != nil {
		switch {
		case errors.Is(err, copilotbus.ErrEmptyMessage):
			return errs.NewFieldErrors("message", copilotbus.ErrEmptyMessage)

		case errors.Is(err, copilotbus.ErrActorNotFound):
			return errs.Errorf(errs.FailedPrecondition, msgNoEmployee)

		case errors.Is(err, copilotbus.ErrIntentService):
			metrics.AddIntentFailure(ctx)
			return errs.Errorf(errs.Unavailable, msgServiceFailure)
		}

		return errs.Errorf(errs.InternalOnlyLog, "processmessage: %s", err)
	}

	metrics.AddCopilotTurn(ctx, res.Action)

	return Reply{Message: res.Message}
}

// tools lists the actions the copilot can run.
func (a *app) tools(ctx context.Context, r *http.Request) web.Encoder {
	return toAppTools(copilotbus.Tools())
}
