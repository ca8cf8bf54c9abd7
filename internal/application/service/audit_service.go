package service

import (
	"context"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/policy"
)

// AuditService appends immutable entries to the cross-cutting audit ledger.
// Writes are best-effort: a failed append is logged and swallowed so that
// audit-trail unavailability never blocks or rolls back a workflow mutation
// that already committed.
type AuditService interface {
	// Record appends one entry. The returned error exists for monitoring
	// callers; orchestrators ignore it by calling Record last.
	Record(ctx context.Context, actorID, action, entityType, entityID string, metadata map[string]string, userAgent string) error

	// List reads the ledger. Admin only.
	List(ctx context.Context, p *entity.Principal, filter port.AuditFilter) ([]*entity.AuditLogEntry, error)
}

type auditServiceImpl struct {
	auditRepo port.AuditLogRepository
	logger    Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo port.AuditLogRepository, logger Logger) AuditService {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends one audit entry, logging and swallowing write failures.
func (s *auditServiceImpl) Record(ctx context.Context, actorID, action, entityType, entityID string, metadata map[string]string, userAgent string) error {
	entry := entity.NewAuditLogEntry(actorID, action, entityType, entityID, metadata, userAgent)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			"error", err,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
		)
		return err
	}
	return nil
}

// List returns audit entries matching the filter, newest first.
func (s *auditServiceImpl) List(ctx context.Context, p *entity.Principal, filter port.AuditFilter) ([]*entity.AuditLogEntry, error) {
	if err := policy.RequireRole(p, entity.RoleAdmin); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, storeErr("list audit entries", err)
	}
	return entries, nil
}
