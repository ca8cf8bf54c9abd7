package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/domain/policy"
	"github.com/tinashem/employee-portal/internal/domain/workflow"
)

// CreateRequisitionInput carries the fields of a new draft requisition.
type CreateRequisitionInput struct {
	Payee    string
	Amount   decimal.Decimal
	Currency string
	Details  string
	Customer string
	Code     string
}

// RequisitionService orchestrates the cash requisition approval workflow.
type RequisitionService interface {
	Create(ctx context.Context, p *entity.Principal, input CreateRequisitionInput) (*entity.CashRequisition, error)
	Get(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error)
	List(ctx context.Context, p *entity.Principal, filter port.RequisitionFilter) ([]*entity.CashRequisition, int, error)

	Submit(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error)
	Approve(ctx context.Context, p *entity.Principal, id, notes string) (*entity.CashRequisition, error)
	Reject(ctx context.Context, p *entity.Principal, id, notes string) (*entity.CashRequisition, error)
	Pay(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error)
	Close(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error)
}

type requisitionServiceImpl struct {
	requisitionRepo port.RequisitionRepository
	descriptor      *workflow.Descriptor
	audit           AuditService
	notifier        NotificationService
	logger          Logger
}

// NewRequisitionService creates a new RequisitionService.
func NewRequisitionService(
	requisitionRepo port.RequisitionRepository,
	audit AuditService,
	notifier NotificationService,
	logger Logger,
) RequisitionService {
	return &requisitionServiceImpl{
		requisitionRepo: requisitionRepo,
		descriptor:      workflow.NewRequisitionDescriptor(),
		audit:           audit,
		notifier:        notifier,
		logger:          logger,
	}
}

// Create creates a draft requisition owned by the preparing employee.
func (s *requisitionServiceImpl) Create(ctx context.Context, p *entity.Principal, input CreateRequisitionInput) (*entity.CashRequisition, error) {
	if err := policy.RequireRole(p, entity.RoleEmployee); err != nil {
		return nil, err
	}

	req, err := entity.NewCashRequisition(
		input.Payee, input.Amount, input.Currency, input.Details,
		input.Customer, input.Code, p.Department, p.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.requisitionRepo.Create(ctx, req); err != nil {
		return nil, storeErr("create requisition", err)
	}

	s.recordAudit(ctx, p.ID, entity.AuditRequisitionCreated, req.ID, map[string]string{
		"amount":   req.Amount.String(),
		"currency": req.Currency,
	})

	s.logger.Info("Requisition created", "id", req.ID, "prepared_by", p.ID)
	return req, nil
}

// Get returns one requisition. Employees may only read their own.
func (s *requisitionServiceImpl) Get(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("load requisition", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: requisition %s", errs.ErrNotFound, id)
	}
	if p.Role == entity.RoleEmployee && req.PreparedByID != p.ID {
		return nil, fmt.Errorf("%w: not the owner", errs.ErrForbidden)
	}
	return req, nil
}

// List returns requisitions visible to the principal with a total count.
// Employees see only their own; reviewers and accounting see everything.
func (s *requisitionServiceImpl) List(ctx context.Context, p *entity.Principal, filter port.RequisitionFilter) ([]*entity.CashRequisition, int, error) {
	if p == nil || p.ID == "" {
		return nil, 0, errs.ErrUnauthenticated
	}
	if p.Role == entity.RoleEmployee {
		filter.PreparedByID = p.ID
	}

	reqs, err := s.requisitionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, storeErr("list requisitions", err)
	}
	total, err := s.requisitionRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, storeErr("count requisitions", err)
	}
	return reqs, total, nil
}

// Submit moves a draft into review. Only the owning employee may submit.
func (s *requisitionServiceImpl) Submit(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error) {
	return s.transition(ctx, p, id, workflow.ActionSubmit, "")
}

// Approve records the admin/HR approval decision.
func (s *requisitionServiceImpl) Approve(ctx context.Context, p *entity.Principal, id, notes string) (*entity.CashRequisition, error) {
	return s.transition(ctx, p, id, workflow.ActionApprove, notes)
}

// Reject terminates the requisition; notes are mandatory.
func (s *requisitionServiceImpl) Reject(ctx context.Context, p *entity.Principal, id, notes string) (*entity.CashRequisition, error) {
	return s.transition(ctx, p, id, workflow.ActionReject, notes)
}

// Pay records the accounting payout.
func (s *requisitionServiceImpl) Pay(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error) {
	return s.transition(ctx, p, id, workflow.ActionPay, "")
}

// Close finishes a paid requisition.
func (s *requisitionServiceImpl) Close(ctx context.Context, p *entity.Principal, id string) (*entity.CashRequisition, error) {
	return s.transition(ctx, p, id, workflow.ActionClose, "")
}

// transition runs the shared action sequencing: authentication presence,
// role/ownership, notes validation, state precondition, compare-and-swap
// mutation, then best-effort audit and notification.
func (s *requisitionServiceImpl) transition(ctx context.Context, p *entity.Principal, id string, action workflow.Action, notes string) (*entity.CashRequisition, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("load requisition", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: requisition %s", errs.ErrNotFound, id)
	}

	rule, ok := s.descriptor.Rule(action)
	if !ok {
		return nil, fmt.Errorf("%w: requisitions do not support %s", errs.ErrInvalidTransition, action)
	}

	if err := policy.CanPerform(p, rule, req.PreparedByID); err != nil {
		return nil, err
	}

	notes = strings.TrimSpace(notes)
	if rule.NotesRequired && notes == "" {
		return nil, fmt.Errorf("%w: %s requires notes", errs.ErrValidation, action)
	}

	if _, err := s.descriptor.Evaluate(action, workflow.Status(req.Status)); err != nil {
		return nil, err
	}

	now := time.Now()
	patch := requisitionPatch(action, p.ID, notes, now)

	// Conditioned on the status read above: a concurrent writer that got
	// there first turns this into ErrInvalidTransition, not a lost update.
	if err := s.requisitionRepo.Transition(ctx, id, string(rule.From), string(rule.To), patch); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return nil, err
		}
		return nil, storeErr("update requisition", err)
	}

	applyRequisitionPatch(req, string(rule.To), patch, now)

	s.recordAudit(ctx, p.ID, requisitionAuditAction(action), req.ID, requisitionAuditMetadata(rule, notes))
	s.notifyRequisition(ctx, action, p, req, notes)

	s.logger.Info("Requisition transitioned",
		"id", req.ID,
		"action", action.String(),
		"from", rule.From.String(),
		"to", rule.To.String(),
		"actor", p.ID,
	)
	return req, nil
}

// recordAudit is best-effort; the AuditService already logs failures.
func (s *requisitionServiceImpl) recordAudit(ctx context.Context, actorID, action, entityID string, metadata map[string]string) {
	_ = s.audit.Record(ctx, actorID, action, entity.EntityTypeRequisition, entityID, metadata, userAgentFrom(ctx))
}

// notifyRequisition emits the notifications defined for the action. Failures
// are logged and swallowed.
func (s *requisitionServiceImpl) notifyRequisition(ctx context.Context, action workflow.Action, p *entity.Principal, req *entity.CashRequisition, notes string) {
	var err error
	switch action {
	case workflow.ActionSubmit:
		err = s.notifier.NotifyReviewers(ctx,
			entity.NotificationRequisitionPending,
			"Cash Requisition Submitted",
			fmt.Sprintf("%s submitted a requisition for %s %s", p.Name, req.Amount, req.Currency),
			req.ID,
		)
	case workflow.ActionApprove:
		err = s.notifier.NotifyUser(ctx, req.PreparedByID,
			entity.NotificationRequisitionApproved,
			"Cash Requisition Approved",
			fmt.Sprintf("Your cash requisition for %s %s has been approved.", req.Amount, req.Currency),
			req.ID,
		)
	case workflow.ActionReject:
		err = s.notifier.NotifyUser(ctx, req.PreparedByID,
			entity.NotificationRequisitionRejected,
			"Cash Requisition Rejected",
			fmt.Sprintf("Your cash requisition for %s %s has been rejected. Reason: %s", req.Amount, req.Currency, notes),
			req.ID,
		)
	case workflow.ActionPay:
		err = s.notifier.NotifyUser(ctx, req.PreparedByID,
			entity.NotificationRequisitionApproved,
			"Requisition Paid",
			fmt.Sprintf("Your requisition for %s %s has been marked as paid.", req.Amount, req.Currency),
			req.ID,
		)
	case workflow.ActionClose:
		// Closing is an accounting bookkeeping step; nobody is notified.
	}
	if err != nil {
		s.logger.Error("Failed to dispatch requisition notification",
			"error", err, "id", req.ID, "action", action.String())
	}
}

// requisitionPatch builds the action-specific field updates.
func requisitionPatch(action workflow.Action, actorID, notes string, now time.Time) port.RequisitionPatch {
	var patch port.RequisitionPatch
	switch action {
	case workflow.ActionApprove:
		patch.AuthorisedByID = &actorID
		if notes != "" {
			patch.AdminNotes = &notes
		}
	case workflow.ActionReject:
		patch.RejectedByID = &actorID
		patch.RejectedAt = &now
		patch.AdminNotes = &notes
	case workflow.ActionPay:
		patch.PaidByID = &actorID
		patch.PaidAt = &now
	case workflow.ActionClose:
		patch.ClosedAt = &now
	}
	return patch
}

// applyRequisitionPatch mirrors the persisted update onto the loaded copy so
// the caller gets the post-transition entity without a reload.
func applyRequisitionPatch(req *entity.CashRequisition, to string, patch port.RequisitionPatch, now time.Time) {
	req.Status = to
	req.UpdatedAt = now
	if patch.AuthorisedByID != nil {
		req.AuthorisedByID = *patch.AuthorisedByID
	}
	if patch.RejectedByID != nil {
		req.RejectedByID = *patch.RejectedByID
	}
	if patch.PaidByID != nil {
		req.PaidByID = *patch.PaidByID
	}
	if patch.AdminNotes != nil {
		req.AdminNotes = *patch.AdminNotes
	}
	if patch.PaidAt != nil {
		req.PaidAt = patch.PaidAt
	}
	if patch.RejectedAt != nil {
		req.RejectedAt = patch.RejectedAt
	}
	if patch.ClosedAt != nil {
		req.ClosedAt = patch.ClosedAt
	}
}

// requisitionAuditAction maps a workflow action to its audit tag.
func requisitionAuditAction(action workflow.Action) string {
	switch action {
	case workflow.ActionSubmit:
		return entity.AuditRequisitionSubmitted
	case workflow.ActionApprove:
		return entity.AuditRequisitionApproved
	case workflow.ActionReject:
		return entity.AuditRequisitionRejected
	case workflow.ActionPay:
		return entity.AuditRequisitionMarkedPaid
	case workflow.ActionClose:
		return entity.AuditRequisitionClosed
	default:
		return action.String()
	}
}

func requisitionAuditMetadata(rule workflow.Rule, notes string) map[string]string {
	metadata := map[string]string{
		"from": rule.From.String(),
		"to":   rule.To.String(),
	}
	if notes != "" {
		metadata["admin_notes"] = notes
	}
	return metadata
}
