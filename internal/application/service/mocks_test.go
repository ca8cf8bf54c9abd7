package service

import (
	"context"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
)

// Function-field mocks: each method delegates to the corresponding func when
// set and falls back to a benign default otherwise.

type mockRequisitionRepo struct {
	createFunc     func(ctx context.Context, req *entity.CashRequisition) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.CashRequisition, error)
	listFunc       func(ctx context.Context, filter port.RequisitionFilter) ([]*entity.CashRequisition, error)
	countFunc      func(ctx context.Context, filter port.RequisitionFilter) (int, error)
	transitionFunc func(ctx context.Context, id string, from, to string, patch port.RequisitionPatch) error
}

func (m *mockRequisitionRepo) Create(ctx context.Context, req *entity.CashRequisition) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil
}

func (m *mockRequisitionRepo) GetByID(ctx context.Context, id string) (*entity.CashRequisition, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRequisitionRepo) List(ctx context.Context, filter port.RequisitionFilter) ([]*entity.CashRequisition, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockRequisitionRepo) Count(ctx context.Context, filter port.RequisitionFilter) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockRequisitionRepo) Transition(ctx context.Context, id string, from, to string, patch port.RequisitionPatch) error {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, from, to, patch)
	}
	return nil
}

type mockLeaveRepo struct {
	createFunc     func(ctx context.Context, leave *entity.LeaveRequest) error
	getByIDFunc    func(ctx context.Context, id string) (*entity.LeaveRequest, error)
	listFunc       func(ctx context.Context, filter port.LeaveFilter) ([]*entity.LeaveRequest, error)
	countFunc      func(ctx context.Context, filter port.LeaveFilter) (int, error)
	transitionFunc func(ctx context.Context, id string, from, to string, patch port.LeavePatch) error
}

func (m *mockLeaveRepo) Create(ctx context.Context, leave *entity.LeaveRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, leave)
	}
	return nil
}

func (m *mockLeaveRepo) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockLeaveRepo) List(ctx context.Context, filter port.LeaveFilter) ([]*entity.LeaveRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockLeaveRepo) Count(ctx context.Context, filter port.LeaveFilter) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockLeaveRepo) Transition(ctx context.Context, id string, from, to string, patch port.LeavePatch) error {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, from, to, patch)
	}
	return nil
}

type mockLeaveTypeRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*entity.LeaveType, error)
	listFunc    func(ctx context.Context, activeOnly bool) ([]*entity.LeaveType, error)
}

func (m *mockLeaveTypeRepo) GetByID(ctx context.Context, id string) (*entity.LeaveType, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.LeaveType{ID: id, Name: "Annual Leave", MaxDays: 22, Active: true}, nil
}

func (m *mockLeaveTypeRepo) List(ctx context.Context, activeOnly bool) ([]*entity.LeaveType, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, activeOnly)
	}
	return nil, nil
}

type mockUserRepo struct {
	createFunc       func(ctx context.Context, user *entity.User) error
	getByIDFunc      func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc   func(ctx context.Context, email string) (*entity.User, error)
	listByRolesFunc  func(ctx context.Context, roles ...entity.Role) ([]*entity.User, error)
	listByStatusFunc func(ctx context.Context, status string) ([]*entity.User, error)
	updateStatusFunc func(ctx context.Context, id string, from, to string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.User, error) {
	if m.listByRolesFunc != nil {
		return m.listByRolesFunc(ctx, roles...)
	}
	return nil, nil
}

func (m *mockUserRepo) ListByStatus(ctx context.Context, status string) ([]*entity.User, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id string, from, to string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return nil
}

type mockNotificationRepo struct {
	createManyFunc  func(ctx context.Context, notifications []*entity.Notification) error
	listByUserFunc  func(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	countUnreadFunc func(ctx context.Context, userID string) (int, error)
	markReadFunc    func(ctx context.Context, id, userID string) error
	markAllReadFunc func(ctx context.Context, userID string) error
}

func (m *mockNotificationRepo) CreateMany(ctx context.Context, notifications []*entity.Notification) error {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, notifications)
	}
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, unreadOnly, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	if m.countUnreadFunc != nil {
		return m.countUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	if m.markAllReadFunc != nil {
		return m.markAllReadFunc(ctx, userID)
	}
	return nil
}

type mockAuditRepo struct {
	appendFunc func(ctx context.Context, entry *entity.AuditLogEntry) error
	listFunc   func(ctx context.Context, filter port.AuditFilter) ([]*entity.AuditLogEntry, error)
}

func (m *mockAuditRepo) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, filter port.AuditFilter) ([]*entity.AuditLogEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

type mockTaskRepo struct {
	createFunc  func(ctx context.Context, task *entity.Task) error
	getByIDFunc func(ctx context.Context, id string) (*entity.Task, error)
	listFunc    func(ctx context.Context, filter port.TaskFilter) ([]*entity.Task, error)
	updateFunc  func(ctx context.Context, task *entity.Task) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) List(ctx context.Context, filter port.TaskFilter) ([]*entity.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

// recordingAudit captures audit actions instead of persisting them.
type recordingAudit struct {
	actions []string
	err     error
}

func (a *recordingAudit) Record(ctx context.Context, actorID, action, entityType, entityID string, metadata map[string]string, userAgent string) error {
	a.actions = append(a.actions, action)
	return a.err
}

func (a *recordingAudit) List(ctx context.Context, p *entity.Principal, filter port.AuditFilter) ([]*entity.AuditLogEntry, error) {
	return nil, nil
}

// recordingNotifier captures notification fan-outs.
type recordingNotifier struct {
	reviewerTypes []string
	userTypes     []string
	recipients    []string
	err           error
}

func (n *recordingNotifier) NotifyReviewers(ctx context.Context, ntype, title, message, relatedID string) error {
	n.reviewerTypes = append(n.reviewerTypes, ntype)
	return n.err
}

func (n *recordingNotifier) NotifyUser(ctx context.Context, userID, ntype, title, message, relatedID string) error {
	n.userTypes = append(n.userTypes, ntype)
	n.recipients = append(n.recipients, userID)
	return n.err
}

func (n *recordingNotifier) ListForUser(ctx context.Context, p *entity.Principal, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}

func (n *recordingNotifier) CountUnread(ctx context.Context, p *entity.Principal) (int, error) {
	return 0, nil
}

func (n *recordingNotifier) MarkRead(ctx context.Context, p *entity.Principal, id string) error {
	return nil
}

func (n *recordingNotifier) MarkAllRead(ctx context.Context, p *entity.Principal) error {
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
