// Package workflow defines the transition-table evaluator shared by the
// requisition and leave approval workflows. A Descriptor holds the valid
// states and role-gated transitions for one entity type; the application
// services evaluate actions against it before mutating anything.
package workflow

// Status is a workflow state in an approval lifecycle.
type Status string

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Action is an operation that may cause a state transition.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionPay     Action = "pay"
	ActionClose   Action = "close"
	ActionCancel  Action = "cancel"
)

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}
