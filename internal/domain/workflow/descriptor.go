package workflow

import (
	"fmt"

	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// Rule describes one permitted transition: the precondition state, the
// resulting state, and who may fire it.
type Rule struct {
	Action Action
	From   Status
	To     Status

	// Roles lists the roles permitted to fire the action.
	Roles []entity.Role

	// OwnerOnly additionally requires the principal to own the entity
	// (submit is employee-and-owner).
	OwnerOnly bool

	// AllowOwner lets the owning user fire the action even without one of
	// the listed roles (a requester cancelling their own leave).
	AllowOwner bool

	// NotesRequired rejects the action unless non-empty notes accompany it.
	NotesRequired bool
}

// PermitsRole returns true if the role is in the rule's role list.
func (r Rule) PermitsRole(role entity.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Descriptor is the immutable transition table for one entity type.
type Descriptor struct {
	entityType string
	initial    Status
	valid      map[Status]bool
	terminal   map[Status]bool
	rules      map[Action]Rule
}

// EntityType returns the entity type this descriptor governs.
func (d *Descriptor) EntityType() string {
	return d.entityType
}

// Initial returns the state newly created entities start in.
func (d *Descriptor) Initial() Status {
	return d.initial
}

// IsTerminal returns true if no transition is defined out of the state.
func (d *Descriptor) IsTerminal(s Status) bool {
	return d.terminal[s]
}

// IsValid returns true if the state belongs to this workflow.
func (d *Descriptor) IsValid(s Status) bool {
	return d.valid[s]
}

// Rule returns the transition rule for the action, if the action exists in
// this workflow at all.
func (d *Descriptor) Rule(action Action) (Rule, bool) {
	rule, ok := d.rules[action]
	return rule, ok
}

// Evaluate resolves the rule for an action and checks the state
// precondition. It does not check authorization; that is the policy's job
// and must already have run.
func (d *Descriptor) Evaluate(action Action, current Status) (Rule, error) {
	rule, ok := d.rules[action]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s does not support %s",
			errs.ErrInvalidTransition, d.entityType, action)
	}
	if rule.From != current {
		return Rule{}, fmt.Errorf("%w: cannot %s a %s %s",
			errs.ErrInvalidTransition, action, current, d.entityType)
	}
	return rule, nil
}

// Actions returns all actions defined by this workflow.
func (d *Descriptor) Actions() []Action {
	actions := make([]Action, 0, len(d.rules))
	for action := range d.rules {
		actions = append(actions, action)
	}
	return actions
}
