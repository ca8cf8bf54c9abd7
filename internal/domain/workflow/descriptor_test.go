package workflow

import (
	"errors"
	"testing"

	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

func TestRequisitionDescriptor_HappyPathOrder(t *testing.T) {
	d := NewRequisitionDescriptor()

	steps := []struct {
		action Action
		from   Status
		to     Status
	}{
		{ActionSubmit, Status(entity.RequisitionStatusDraft), Status(entity.RequisitionStatusSubmitted)},
		{ActionApprove, Status(entity.RequisitionStatusSubmitted), Status(entity.RequisitionStatusAdminApproved)},
		{ActionPay, Status(entity.RequisitionStatusAdminApproved), Status(entity.RequisitionStatusAccountingPaid)},
		{ActionClose, Status(entity.RequisitionStatusAccountingPaid), Status(entity.RequisitionStatusClosed)},
	}

	current := d.Initial()
	for _, step := range steps {
		rule, err := d.Evaluate(step.action, current)
		if err != nil {
			t.Fatalf("Evaluate(%s, %s) error: %v", step.action, current, err)
		}
		if rule.From != step.from || rule.To != step.to {
			t.Fatalf("Evaluate(%s) = %s→%s, want %s→%s", step.action, rule.From, rule.To, step.from, step.to)
		}
		current = rule.To
	}

	if !d.IsTerminal(current) {
		t.Errorf("expected %s to be terminal", current)
	}
}

func TestRequisitionDescriptor_RejectsSkippedAndReorderedActions(t *testing.T) {
	d := NewRequisitionDescriptor()

	tests := []struct {
		name    string
		action  Action
		current Status
	}{
		{"pay before approve", ActionPay, Status(entity.RequisitionStatusSubmitted)},
		{"close before pay", ActionClose, Status(entity.RequisitionStatusAdminApproved)},
		{"approve a draft", ActionApprove, Status(entity.RequisitionStatusDraft)},
		{"submit twice", ActionSubmit, Status(entity.RequisitionStatusSubmitted)},
		{"reject after approval", ActionReject, Status(entity.RequisitionStatusAdminApproved)},
		{"approve a closed requisition", ActionApprove, Status(entity.RequisitionStatusClosed)},
		{"approve a rejected requisition", ActionApprove, Status(entity.RequisitionStatusRejected)},
		{"cancel is not a requisition action", ActionCancel, Status(entity.RequisitionStatusDraft)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Evaluate(tt.action, tt.current)
			if !errors.Is(err, errs.ErrInvalidTransition) {
				t.Errorf("Evaluate(%s, %s) error = %v, want ErrInvalidTransition", tt.action, tt.current, err)
			}
		})
	}
}

func TestRequisitionDescriptor_RuleFlags(t *testing.T) {
	d := NewRequisitionDescriptor()

	submit, ok := d.Rule(ActionSubmit)
	if !ok {
		t.Fatal("submit rule missing")
	}
	if !submit.OwnerOnly {
		t.Error("submit should require ownership")
	}
	if !submit.PermitsRole(entity.RoleEmployee) || submit.PermitsRole(entity.RoleAdmin) {
		t.Error("submit should permit EMPLOYEE only")
	}

	reject, _ := d.Rule(ActionReject)
	if !reject.NotesRequired {
		t.Error("reject should require notes")
	}

	pay, _ := d.Rule(ActionPay)
	if !pay.PermitsRole(entity.RoleAccounting) || pay.PermitsRole(entity.RoleHR) {
		t.Error("pay should permit ACCOUNTING only")
	}
}

func TestLeaveDescriptor_AllOutcomesTerminal(t *testing.T) {
	d := NewLeaveDescriptor(true)

	for _, s := range []Status{
		Status(entity.LeaveStatusApproved),
		Status(entity.LeaveStatusRejected),
		Status(entity.LeaveStatusCancelled),
	} {
		if !d.IsTerminal(s) {
			t.Errorf("expected %s to be terminal", s)
		}
		for _, action := range []Action{ActionApprove, ActionReject, ActionCancel} {
			if _, err := d.Evaluate(action, s); !errors.Is(err, errs.ErrInvalidTransition) {
				t.Errorf("Evaluate(%s, %s) should be an invalid transition, got %v", action, s, err)
			}
		}
	}
}

func TestLeaveDescriptor_ReviewerRolesConfigurable(t *testing.T) {
	adminOnly := NewLeaveDescriptor(false)
	withHR := NewLeaveDescriptor(true)

	rule, _ := adminOnly.Rule(ActionApprove)
	if rule.PermitsRole(entity.RoleHR) {
		t.Error("HR should not review leave when disabled")
	}

	rule, _ = withHR.Rule(ActionApprove)
	if !rule.PermitsRole(entity.RoleHR) || !rule.PermitsRole(entity.RoleAdmin) {
		t.Error("ADMIN and HR should both review leave when enabled")
	}

	cancel, _ := withHR.Rule(ActionCancel)
	if !cancel.AllowOwner {
		t.Error("the requester should be able to cancel their own leave")
	}
}

func TestBuilder_PanicsOnDuplicateAction(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Permit() should panic when an action is configured twice")
		}
	}()

	b := NewBuilder("Thing", Status("A"))
	b.Permit(ActionSubmit, Status("A"), Status("B"))
	b.Permit(ActionSubmit, Status("B"), Status("C"))
}

func TestBuilder_PanicsOnTransitionOutOfTerminalState(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on a transition leaving a terminal state")
		}
	}()

	b := NewBuilder("Thing", Status("A"))
	b.Permit(ActionSubmit, Status("B"), Status("C"))
	b.Terminal(Status("B"))
	b.Build()
}
