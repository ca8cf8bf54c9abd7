// Package policy implements the stateless authorization check applied before
// any workflow transition. Two dimensions compose with logical AND: role
// membership and, where the rule demands it, ownership of the entity.
package policy

import (
	"fmt"

	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/domain/workflow"
)

// CanPerform decides whether the principal may fire the transition described
// by rule against an entity owned by ownerID. A nil principal is
// unauthenticated, which is reported distinctly from an authenticated but
// forbidden caller.
func CanPerform(p *entity.Principal, rule workflow.Rule, ownerID string) error {
	if p == nil || p.ID == "" {
		return errs.ErrUnauthenticated
	}

	isOwner := p.ID == ownerID

	if rule.AllowOwner && isOwner {
		return nil
	}

	if !rule.PermitsRole(p.Role) {
		return fmt.Errorf("%w: role %s may not %s", errs.ErrForbidden, p.Role, rule.Action)
	}

	if rule.OwnerOnly && !isOwner {
		return fmt.Errorf("%w: only the owner may %s", errs.ErrForbidden, rule.Action)
	}

	return nil
}

// RequireRole checks simple role membership outside the workflow tables
// (admin-only endpoints such as user approval).
func RequireRole(p *entity.Principal, roles ...entity.Role) error {
	if p == nil || p.ID == "" {
		return errs.ErrUnauthenticated
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s is not permitted", errs.ErrForbidden, p.Role)
}
