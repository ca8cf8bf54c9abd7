// Package port defines the persistence contracts consumed by the application
// services. Implementations live under internal/infrastructure/persistence.
package port

import (
	"context"
	"time"

	"github.com/tinashem/employee-portal/internal/domain/entity"
)

// RequisitionPatch carries the action-specific fields written alongside a
// requisition status change. Nil fields are left untouched.
type RequisitionPatch struct {
	AuthorisedByID *string
	PaidByID       *string
	RejectedByID   *string
	AdminNotes     *string
	PaidAt         *time.Time
	RejectedAt     *time.Time
	ClosedAt       *time.Time
}

// RequisitionFilter narrows requisition queries.
type RequisitionFilter struct {
	Status       string
	PreparedByID string
	Department   string
	Limit        int
	Offset       int
}

// RequisitionRepository defines persistence operations for CashRequisition.
type RequisitionRepository interface {
	Create(ctx context.Context, req *entity.CashRequisition) error

	// GetByID returns (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, id string) (*entity.CashRequisition, error)

	List(ctx context.Context, filter RequisitionFilter) ([]*entity.CashRequisition, error)
	Count(ctx context.Context, filter RequisitionFilter) (int, error)

	// Transition performs the compare-and-swap status update: the row is
	// written only if its current status still equals from. When no row
	// matches (a concurrent writer won the race, or the caller read a
	// stale status), it returns errs.ErrInvalidTransition and performs no
	// mutation.
	Transition(ctx context.Context, id string, from, to string, patch RequisitionPatch) error
}

// LeavePatch carries the reviewer fields written alongside a leave status
// change.
type LeavePatch struct {
	AdminID    *string
	AdminNotes *string
}

// LeaveFilter narrows leave request queries.
type LeaveFilter struct {
	Status      string
	RequesterID string
	LeaveTypeID string
	Limit       int
	Offset      int
}

// LeaveRepository defines persistence operations for LeaveRequest.
type LeaveRepository interface {
	Create(ctx context.Context, leave *entity.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]*entity.LeaveRequest, error)
	Count(ctx context.Context, filter LeaveFilter) (int, error)

	// Transition has the same compare-and-swap contract as
	// RequisitionRepository.Transition.
	Transition(ctx context.Context, id string, from, to string, patch LeavePatch) error
}

// LeaveTypeRepository reads the leave type catalog.
type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.LeaveType, error)
}

// UserRepository defines persistence operations for User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.User, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.User, error)

	// UpdateStatus is conditioned on the previously read status, same
	// compare-and-swap contract as the workflow transitions.
	UpdateStatus(ctx context.Context, id string, from, to string) error
}

// NotificationRepository defines persistence operations for Notification.
type NotificationRepository interface {
	CreateMany(ctx context.Context, notifications []*entity.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead only touches notifications owned by userID.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// AuditFilter narrows audit ledger queries.
type AuditFilter struct {
	ActorID    string
	EntityType string
	EntityID   string
	Limit      int
	Offset     int
}

// AuditLogRepository appends to and reads the append-only audit ledger.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLogEntry, error)
}

// TaskFilter narrows task queries.
type TaskFilter struct {
	Status       string
	AssignedToID string
	CreatedByID  string
	Limit        int
	Offset       int
}

// TaskRepository defines persistence operations for Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
}

// TransactionManager handles database transactions.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
