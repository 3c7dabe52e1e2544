package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/actions"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/resource"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/role"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ADMIN" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

type rule struct {
	role     role.Role
	resource resource.Resource
	actions  []actions.Action
}

// rules grants the non admin roles. ADMIN passes every check.
var rules = []rule{
	{role.Dispatcher, resource.Customer, []actions.Action{actions.Get, actions.Create, actions.Update, actions.Delete}},
	{role.Dispatcher, resource.Offer, []actions.Action{actions.Get, actions.Create}},
	{role.Dispatcher, resource.Dashboard, []actions.Action{actions.Get}},
	{role.Dispatcher, resource.Copilot, []actions.Action{actions.Use}},

	{role.Staff, resource.Customer, []actions.Action{actions.Get}},
	{role.Staff, resource.Dashboard, []actions.Action{actions.Get}},
	{role.Staff, resource.Copilot, []actions.Action{actions.Use}},
}

type policy struct {
	log      *logger.Logger
	enforcer *casbin.Enforcer
}

func newPolicy(log *logger.Logger) (*policy, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	for _, r := range rules {
		for _, act := range r.actions {
			if _, err := e.AddPolicy(r.role.String(), r.resource.String(), act.String()); err != nil {
				return nil, fmt.Errorf("add policy %s %s %s: %w", r.role, r.resource, act, err)
			}
		}
	}

	return &policy{
		log:      log,
		enforcer: e,
	}, nil
}

func (p *policy) check(ctx context.Context, r role.Role, res resource.Resource, act actions.Action) error {
	ok, err := p.enforcer.Enforce(r.String(), res.String(), act.String())
	if err != nil {
		p.log.Error(ctx, "auth: casbin enforce failed", "role", r, "resource", res, "action", act, "err", err)
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return errors.New("denied by policy")
	}

	return nil
}
