package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
)

// AuditLogRepository implements port.AuditLogRepository using SQLite. The
// ledger is append-only; there are no update or delete statements here.
type AuditLogRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewAuditLogRepository creates a new AuditLogRepository.
func NewAuditLogRepository(db *sqlite.DB, logger *zap.Logger) *AuditLogRepository {
	return &AuditLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts an audit entry. Metadata is stored as a JSON object.
func (r *AuditLogRepository) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	var metadata interface{}
	if len(entry.Metadata) > 0 {
		encoded, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("encode audit metadata: %w", err)
		}
		metadata = string(encoded)
	}

	query := `
		INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, metadata, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		entry.ID, nullable(entry.ActorID), entry.Action, entry.EntityType,
		nullable(entry.EntityID), metadata, nullable(entry.UserAgent), entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to append audit entry", zap.Error(err), zap.String("action", entry.Action))
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// List returns audit entries matching the filter, newest first.
func (r *AuditLogRepository) List(ctx context.Context, filter port.AuditFilter) ([]*entity.AuditLogEntry, error) {
	query := `SELECT id, COALESCE(actor_id, ''), action, entity_type, COALESCE(entity_id, ''),
		metadata, COALESCE(user_agent, ''), created_at
		FROM audit_log WHERE 1=1`
	args := []interface{}{}

	if filter.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filter.ActorID)
	}
	if filter.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filter.EntityID)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list audit entries", zap.Error(err))
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLogEntry
	for rows.Next() {
		var (
			entry    entity.AuditLogEntry
			metadata []byte
		)
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.EntityType,
			&entry.EntityID, &metadata, &entry.UserAgent, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("decode audit metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// Verify interface compliance
var _ port.AuditLogRepository = (*AuditLogRepository)(nil)
