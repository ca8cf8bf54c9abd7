package entity

// Role identifies the authorization role of a user. Role is the primary
// authorization dimension; ownership is the second.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleHR         Role = "HR"
	RoleEmployee   Role = "EMPLOYEE"
	RoleAccounting Role = "ACCOUNTING"
)

var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleHR:         true,
	RoleEmployee:   true,
	RoleAccounting: true,
}

// IsValid returns true if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Status constants for CashRequisition
const (
	RequisitionStatusDraft          = "DRAFT"
	RequisitionStatusSubmitted      = "SUBMITTED"
	RequisitionStatusAdminApproved  = "ADMIN_APPROVED"
	RequisitionStatusAccountingPaid = "ACCOUNTING_PAID"
	RequisitionStatusClosed         = "CLOSED"
	RequisitionStatusRejected       = "REJECTED"
)

// Status constants for LeaveRequest
const (
	LeaveStatusPending   = "PENDING"
	LeaveStatusApproved  = "APPROVED"
	LeaveStatusRejected  = "REJECTED"
	LeaveStatusCancelled = "CANCELLED"
)

// Status constants for User accounts
const (
	UserStatusPending  = "PENDING"
	UserStatusActive   = "ACTIVE"
	UserStatusRejected = "REJECTED"
)

// Status constants for Task
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// Currency constants for CashRequisition
const (
	CurrencyUSD = "USD"
	CurrencyZWG = "ZWG"
)

var validCurrencies = map[string]bool{
	CurrencyUSD: true,
	CurrencyZWG: true,
}

// Notification type tags, derived deterministically from
// (entity type, resulting status). No fallback tag exists for a known
// transition.
const (
	NotificationRequisitionPending  = "REQUISITION_PENDING"
	NotificationRequisitionApproved = "REQUISITION_APPROVED"
	NotificationRequisitionRejected = "REQUISITION_REJECTED"
	NotificationLeavePending        = "LEAVE_PENDING"
	NotificationLeaveApproved       = "LEAVE_APPROVED"
	NotificationLeaveRejected       = "LEAVE_REJECTED"
	NotificationTaskAssigned        = "TASK_ASSIGNED"
	NotificationTaskUpdated         = "TASK_UPDATED"
	NotificationTaskCompleted       = "TASK_COMPLETED"
)

// Audit action tags
const (
	AuditRequisitionCreated    = "REQUISITION_CREATED"
	AuditRequisitionSubmitted  = "REQUISITION_SUBMITTED"
	AuditRequisitionApproved   = "REQUISITION_ADMIN_APPROVED"
	AuditRequisitionRejected   = "REQUISITION_REJECTED"
	AuditRequisitionMarkedPaid = "REQUISITION_MARKED_PAID"
	AuditRequisitionClosed     = "REQUISITION_CLOSED"
	AuditLeaveRequested        = "LEAVE_REQUESTED"
	AuditLeaveApproved         = "LEAVE_APPROVED"
	AuditLeaveRejected         = "LEAVE_REJECTED"
	AuditLeaveCancelled        = "LEAVE_CANCELLED"
	AuditTaskCreated           = "TASK_CREATED"
	AuditTaskUpdated           = "TASK_UPDATED"
	AuditLoginSuccess          = "LOGIN_SUCCESS"
	AuditLoginFailed           = "LOGIN_FAILED"
	AuditUserRegistered        = "USER_REGISTERED"
	AuditUserApproved          = "USER_APPROVED"
	AuditUserRejected          = "USER_REJECTED"
)

// Entity type tags used in audit entries and notification relations
const (
	EntityTypeRequisition = "CashRequisition"
	EntityTypeLeave       = "LeaveRequest"
	EntityTypeTask        = "Task"
	EntityTypeUser        = "User"
)
