package workflow

import (
	"fmt"

	"github.com/tinashem/employee-portal/internal/domain/entity"
)

// Builder assembles a Descriptor. Each Permit call opens a RuleConfig that
// can be refined fluently before the next Permit or Build.
type Builder struct {
	entityType string
	initial    Status
	valid      map[Status]bool
	terminal   map[Status]bool
	rules      map[Action]*Rule
}

// RuleConfig refines a single permitted transition.
type RuleConfig struct {
	rule *Rule
}

// NewBuilder starts a descriptor for one entity type with its initial state.
func NewBuilder(entityType string, initial Status) *Builder {
	b := &Builder{
		entityType: entityType,
		initial:    initial,
		valid:      make(map[Status]bool),
		terminal:   make(map[Status]bool),
		rules:      make(map[Action]*Rule),
	}
	b.valid[initial] = true
	return b
}

// Permit allows an action to transition from one state to another. Each
// action may appear once per descriptor; the transition tables here are
// hard-coded per entity type, not a general rule engine.
func (b *Builder) Permit(action Action, from, to Status) *RuleConfig {
	if _, exists := b.rules[action]; exists {
		panic(fmt.Sprintf("workflow %s: action %s configured twice", b.entityType, action))
	}
	rule := &Rule{Action: action, From: from, To: to}
	b.rules[action] = rule
	b.valid[from] = true
	b.valid[to] = true
	return &RuleConfig{rule: rule}
}

// Terminal marks states from which no transition is defined.
func (b *Builder) Terminal(states ...Status) *Builder {
	for _, s := range states {
		b.valid[s] = true
		b.terminal[s] = true
	}
	return b
}

// Build freezes the configuration into an immutable Descriptor.
func (b *Builder) Build() *Descriptor {
	rules := make(map[Action]Rule, len(b.rules))
	for action, rule := range b.rules {
		if b.terminal[rule.From] {
			panic(fmt.Sprintf("workflow %s: action %s leaves terminal state %s", b.entityType, action, rule.From))
		}
		rules[action] = *rule
	}

	valid := make(map[Status]bool, len(b.valid))
	for s := range b.valid {
		valid[s] = true
	}
	terminal := make(map[Status]bool, len(b.terminal))
	for s := range b.terminal {
		terminal[s] = true
	}

	return &Descriptor{
		entityType: b.entityType,
		initial:    b.initial,
		valid:      valid,
		terminal:   terminal,
		rules:      rules,
	}
}

// Roles restricts the action to the given roles.
func (c *RuleConfig) Roles(roles ...entity.Role) *RuleConfig {
	c.rule.Roles = roles
	return c
}

// OwnerOnly requires the principal to own the entity in addition to holding
// a permitted role.
func (c *RuleConfig) OwnerOnly() *RuleConfig {
	c.rule.OwnerOnly = true
	return c
}

// AllowOwner lets the owner fire the action without holding a listed role.
func (c *RuleConfig) AllowOwner() *RuleConfig {
	c.rule.AllowOwner = true
	return c
}

// RequireNotes rejects the action unless non-empty notes accompany it.
func (c *RuleConfig) RequireNotes() *RuleConfig {
	c.rule.NotesRequired = true
	return c
}
