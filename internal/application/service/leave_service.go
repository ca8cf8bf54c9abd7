package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/domain/policy"
	"github.com/tinashem/employee-portal/internal/domain/workflow"
)

// CreateLeaveInput carries the fields of a new leave request.
type CreateLeaveInput struct {
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// LeaveService orchestrates the leave request workflow.
type LeaveService interface {
	Create(ctx context.Context, p *entity.Principal, input CreateLeaveInput) (*entity.LeaveRequest, error)
	Get(ctx context.Context, p *entity.Principal, id string) (*entity.LeaveRequest, error)
	List(ctx context.Context, p *entity.Principal, filter port.LeaveFilter) ([]*entity.LeaveRequest, int, error)
	ListTypes(ctx context.Context) ([]*entity.LeaveType, error)

	Approve(ctx context.Context, p *entity.Principal, id, notes string) (*entity.LeaveRequest, error)
	Reject(ctx context.Context, p *entity.Principal, id, notes string) (*entity.LeaveRequest, error)
	Cancel(ctx context.Context, p *entity.Principal, id string) (*entity.LeaveRequest, error)
}

type leaveServiceImpl struct {
	leaveRepo     port.LeaveRepository
	leaveTypeRepo port.LeaveTypeRepository
	descriptor    *workflow.Descriptor
	audit         AuditService
	notifier      NotificationService
	logger        Logger
}

// NewLeaveService creates a new LeaveService. hrMayReview decides whether HR
// shares leave review rights with ADMIN in this deployment.
func NewLeaveService(
	leaveRepo port.LeaveRepository,
	leaveTypeRepo port.LeaveTypeRepository,
	hrMayReview bool,
	audit AuditService,
	notifier NotificationService,
	logger Logger,
) LeaveService {
	return &leaveServiceImpl{
		leaveRepo:     leaveRepo,
		leaveTypeRepo: leaveTypeRepo,
		descriptor:    workflow.NewLeaveDescriptor(hrMayReview),
		audit:         audit,
		notifier:      notifier,
		logger:        logger,
	}
}

// Create files a PENDING leave request for the principal and notifies the
// reviewer set.
func (s *leaveServiceImpl) Create(ctx context.Context, p *entity.Principal, input CreateLeaveInput) (*entity.LeaveRequest, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	leaveType, err := s.leaveTypeRepo.GetByID(ctx, input.LeaveTypeID)
	if err != nil {
		return nil, storeErr("load leave type", err)
	}
	if leaveType == nil || !leaveType.Active {
		return nil, fmt.Errorf("%w: invalid leave type", errs.ErrValidation)
	}

	leave, err := entity.NewLeaveRequest(p.ID, input.LeaveTypeID, input.StartDate, input.EndDate, input.Reason)
	if err != nil {
		return nil, err
	}
	if leaveType.MaxDays > 0 && leave.Days > leaveType.MaxDays {
		return nil, fmt.Errorf("%w: %s allows at most %d day(s), requested %d",
			errs.ErrValidation, leaveType.Name, leaveType.MaxDays, leave.Days)
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, storeErr("create leave request", err)
	}

	s.recordAudit(ctx, p.ID, entity.AuditLeaveRequested, leave.ID, map[string]string{
		"leave_type_id": leave.LeaveTypeID,
		"days":          fmt.Sprintf("%d", leave.Days),
	})

	if err := s.notifier.NotifyReviewers(ctx,
		entity.NotificationLeavePending,
		"New Leave Request",
		fmt.Sprintf("%s submitted a leave request for %d day(s)", p.Name, leave.Days),
		leave.ID,
	); err != nil {
		s.logger.Error("Failed to notify reviewers of new leave", "error", err, "id", leave.ID)
	}

	s.logger.Info("Leave request created", "id", leave.ID, "requester", p.ID, "days", leave.Days)
	return leave, nil
}

// Get returns one leave request. Employees may only read their own.
func (s *leaveServiceImpl) Get(ctx context.Context, p *entity.Principal, id string) (*entity.LeaveRequest, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("load leave request", err)
	}
	if leave == nil {
		return nil, fmt.Errorf("%w: leave request %s", errs.ErrNotFound, id)
	}
	if p.Role != entity.RoleAdmin && p.Role != entity.RoleHR && leave.RequesterID != p.ID {
		return nil, fmt.Errorf("%w: not the requester", errs.ErrForbidden)
	}
	return leave, nil
}

// List returns leave requests visible to the principal with a total count.
func (s *leaveServiceImpl) List(ctx context.Context, p *entity.Principal, filter port.LeaveFilter) ([]*entity.LeaveRequest, int, error) {
	if p == nil || p.ID == "" {
		return nil, 0, errs.ErrUnauthenticated
	}
	if p.Role != entity.RoleAdmin && p.Role != entity.RoleHR {
		filter.RequesterID = p.ID
	}

	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, storeErr("list leave requests", err)
	}
	total, err := s.leaveRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, storeErr("count leave requests", err)
	}
	return leaves, total, nil
}

// ListTypes returns the active leave type catalog.
func (s *leaveServiceImpl) ListTypes(ctx context.Context) ([]*entity.LeaveType, error) {
	types, err := s.leaveTypeRepo.List(ctx, true)
	if err != nil {
		return nil, storeErr("list leave types", err)
	}
	return types, nil
}

// Approve records the reviewer's approval.
func (s *leaveServiceImpl) Approve(ctx context.Context, p *entity.Principal, id, notes string) (*entity.LeaveRequest, error) {
	return s.transition(ctx, p, id, workflow.ActionApprove, notes)
}

// Reject records the reviewer's rejection; notes are mandatory.
func (s *leaveServiceImpl) Reject(ctx context.Context, p *entity.Principal, id, notes string) (*entity.LeaveRequest, error) {
	return s.transition(ctx, p, id, workflow.ActionReject, notes)
}

// Cancel withdraws a pending request. The requester or an admin may cancel.
func (s *leaveServiceImpl) Cancel(ctx context.Context, p *entity.Principal, id string) (*entity.LeaveRequest, error) {
	return s.transition(ctx, p, id, workflow.ActionCancel, "")
}

// transition runs the same sequencing as the requisition workflow against
// the leave descriptor.
func (s *leaveServiceImpl) transition(ctx context.Context, p *entity.Principal, id string, action workflow.Action, notes string) (*entity.LeaveRequest, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("load leave request", err)
	}
	if leave == nil {
		return nil, fmt.Errorf("%w: leave request %s", errs.ErrNotFound, id)
	}

	rule, ok := s.descriptor.Rule(action)
	if !ok {
		return nil, fmt.Errorf("%w: leave requests do not support %s", errs.ErrInvalidTransition, action)
	}

	if err := policy.CanPerform(p, rule, leave.RequesterID); err != nil {
		return nil, err
	}

	notes = strings.TrimSpace(notes)
	if rule.NotesRequired && notes == "" {
		return nil, fmt.Errorf("%w: %s requires notes", errs.ErrValidation, action)
	}

	if _, err := s.descriptor.Evaluate(action, workflow.Status(leave.Status)); err != nil {
		return nil, err
	}

	patch := leavePatch(action, p.ID, notes)
	if err := s.leaveRepo.Transition(ctx, id, string(rule.From), string(rule.To), patch); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return nil, err
		}
		return nil, storeErr("update leave request", err)
	}

	leave.Status = string(rule.To)
	leave.UpdatedAt = time.Now()
	if patch.AdminID != nil {
		leave.AdminID = *patch.AdminID
	}
	if patch.AdminNotes != nil {
		leave.AdminNotes = *patch.AdminNotes
	}

	s.recordAudit(ctx, p.ID, leaveAuditAction(action), leave.ID, map[string]string{
		"from": rule.From.String(),
		"to":   rule.To.String(),
	})
	s.notifyLeave(ctx, action, leave, notes)

	s.logger.Info("Leave request transitioned",
		"id", leave.ID,
		"action", action.String(),
		"to", rule.To.String(),
		"actor", p.ID,
	)
	return leave, nil
}

func (s *leaveServiceImpl) recordAudit(ctx context.Context, actorID, action, entityID string, metadata map[string]string) {
	_ = s.audit.Record(ctx, actorID, action, entity.EntityTypeLeave, entityID, metadata, userAgentFrom(ctx))
}

func (s *leaveServiceImpl) notifyLeave(ctx context.Context, action workflow.Action, leave *entity.LeaveRequest, notes string) {
	var err error
	switch action {
	case workflow.ActionApprove:
		err = s.notifier.NotifyUser(ctx, leave.RequesterID,
			entity.NotificationLeaveApproved,
			"Leave Request Approved",
			fmt.Sprintf("Your leave request for %d day(s) has been approved.", leave.Days),
			leave.ID,
		)
	case workflow.ActionReject:
		err = s.notifier.NotifyUser(ctx, leave.RequesterID,
			entity.NotificationLeaveRejected,
			"Leave Request Rejected",
			fmt.Sprintf("Your leave request for %d day(s) has been rejected. Reason: %s", leave.Days, notes),
			leave.ID,
		)
	case workflow.ActionCancel:
		// Cancellation is requester- or admin-initiated; nobody is notified.
	}
	if err != nil {
		s.logger.Error("Failed to dispatch leave notification",
			"error", err, "id", leave.ID, "action", action.String())
	}
}

// leavePatch builds the reviewer fields written with the status change.
func leavePatch(action workflow.Action, actorID, notes string) port.LeavePatch {
	var patch port.LeavePatch
	switch action {
	case workflow.ActionApprove:
		patch.AdminID = &actorID
		if notes != "" {
			patch.AdminNotes = &notes
		}
	case workflow.ActionReject:
		patch.AdminID = &actorID
		patch.AdminNotes = &notes
	}
	return patch
}

func leaveAuditAction(action workflow.Action) string {
	switch action {
	case workflow.ActionApprove:
		return entity.AuditLeaveApproved
	case workflow.ActionReject:
		return entity.AuditLeaveRejected
	case workflow.ActionCancel:
		return entity.AuditLeaveCancelled
	default:
		return action.String()
	}
}
