package workflow

import "github.com/tinashem/employee-portal/internal/domain/entity"

// NewRequisitionDescriptor builds the cash requisition workflow:
// DRAFT → SUBMITTED → ADMIN_APPROVED → ACCOUNTING_PAID → CLOSED, with
// SUBMITTED → REJECTED as the alternate terminal branch.
func NewRequisitionDescriptor() *Descriptor {
	b := NewBuilder(entity.EntityTypeRequisition, Status(entity.RequisitionStatusDraft))

	b.Permit(ActionSubmit, Status(entity.RequisitionStatusDraft), Status(entity.RequisitionStatusSubmitted)).
		Roles(entity.RoleEmployee).
		OwnerOnly()
	b.Permit(ActionApprove, Status(entity.RequisitionStatusSubmitted), Status(entity.RequisitionStatusAdminApproved)).
		Roles(entity.RoleAdmin, entity.RoleHR)
	b.Permit(ActionReject, Status(entity.RequisitionStatusSubmitted), Status(entity.RequisitionStatusRejected)).
		Roles(entity.RoleAdmin, entity.RoleHR).
		RequireNotes()
	b.Permit(ActionPay, Status(entity.RequisitionStatusAdminApproved), Status(entity.RequisitionStatusAccountingPaid)).
		Roles(entity.RoleAccounting)
	b.Permit(ActionClose, Status(entity.RequisitionStatusAccountingPaid), Status(entity.RequisitionStatusClosed)).
		Roles(entity.RoleAccounting)

	b.Terminal(Status(entity.RequisitionStatusRejected), Status(entity.RequisitionStatusClosed))

	return b.Build()
}

// NewLeaveDescriptor builds the leave request workflow: PENDING is the only
// mutable state; APPROVED, REJECTED and CANCELLED are all terminal.
//
// Whether HR may review leave alongside ADMIN varies by deployment, so the
// reviewer set is a parameter rather than a hard-coded rule.
func NewLeaveDescriptor(hrMayReview bool) *Descriptor {
	reviewers := []entity.Role{entity.RoleAdmin}
	if hrMayReview {
		reviewers = append(reviewers, entity.RoleHR)
	}

	b := NewBuilder(entity.EntityTypeLeave, Status(entity.LeaveStatusPending))

	b.Permit(ActionApprove, Status(entity.LeaveStatusPending), Status(entity.LeaveStatusApproved)).
		Roles(reviewers...)
	b.Permit(ActionReject, Status(entity.LeaveStatusPending), Status(entity.LeaveStatusRejected)).
		Roles(reviewers...).
		RequireNotes()
	b.Permit(ActionCancel, Status(entity.LeaveStatusPending), Status(entity.LeaveStatusCancelled)).
		Roles(entity.RoleAdmin).
		AllowOwner()

	b.Terminal(
		Status(entity.LeaveStatusApproved),
		Status(entity.LeaveStatusRejected),
		Status(entity.LeaveStatusCancelled),
	)

	return b.Build()
}
