package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/actions"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
)

// Authorize checks the authenticated role may act on the resource. The
// action is derived from the HTTP method.
func Authorize(ath *auth.Auth, res resource.Resource) web.MidFunc {
	return authorize(ath, res, func(r *http.Request) (actions.Action, error) {
		return actions.FromHTTPMethod(r.Method)
	})
}

// AuthorizeAction checks the authenticated role may perform a fixed action
// on the resource regardless of the HTTP method.
func AuthorizeAction(ath *auth.Auth, res resource.Resource, act actions.Action) web.MidFunc {
	return authorize(ath, res, func(*http.Request) (actions.Action, error) {
		return act, nil
	})
}

func authorize(ath *auth.Auth, res resource.Resource, action func(r *http.Request) (actions.Action, error)) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims, err := GetClaims(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			act, err := action(r)
			if err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			if err := ath.Authorize(ctx, claims, res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
