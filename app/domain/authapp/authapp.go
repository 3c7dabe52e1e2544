// Package authapp maintains the app layer api for the caller's identity.
package authapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/auth"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/mid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/tenantbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/actions"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
)

// EmployeeQuerier finds the employee behind a user.
type EmployeeQuerier interface {
	QueryByUserID(ctx context.Context, userID uuid.UUID) (employeebus.Employee, error)
}

// TenantQuerier finds a company.
type TenantQuerier interface {
	QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error)
}

type app struct {
	auth      *auth.Auth
	employees EmployeeQuerier
	tenants   TenantQuerier
}

func newApp(ath *auth.Auth, employees EmployeeQuerier, tenants TenantQuerier) *app {
	return &app{
		auth:      ath,
		employees: employees,
		tenants:   tenants,
	}
}

// me returns the employee and company behind the bearer token.
func (a *app) me(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	emp, err := a.employees.QueryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, employeebus.ErrNotFound) {
			return errs.Errorf(errs.FailedPrecondition, "no employee profile for this user")
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyuserid: %s", err)
	}

	tnt, err := a.tenants.QueryByID(ctx, emp.TenantID)
	if err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return errs.Errorf(errs.FailedPrecondition, "company not found")
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: %s", err)
	}

	claims, err := mid.GetClaims(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return toAppIdentity(emp, tnt, a.permissions(ctx, claims))
}

// permissions lists the actions the caller may perform per resource.
func (a *app) permissions(ctx context.Context, claims auth.Claims) map[string][]string {
	perms := make(map[string][]string)

	for _, res := range resource.All() {
		for _, act := range actions.All() {
			if err := a.auth.Authorize(ctx, claims, res, act); err != nil {
				continue
			}
			perms[res.String()] = append(perms[res.String()], act.String())
		}
	}

	return perms
}
