package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
)

// NotificationRepository implements port.NotificationRepository using SQLite.
type NotificationRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlite.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// CreateMany inserts a batch of notifications in one statement. An empty
// batch is a no-op.
func (r *NotificationRepository) CreateMany(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO notifications
		(id, user_id, type, title, message, related_id, read, created_at) VALUES `)
	args := make([]interface{}, 0, len(notifications)*8)
	for i, n := range notifications {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, n.ID, n.UserID, n.Type, n.Title, n.Message,
			nullable(n.RelatedID), n.Read, n.CreatedAt)
	}

	_, err := r.db.Executor(ctx).ExecContext(ctx, sb.String(), args...)
	if err != nil {
		r.logger.Error("Failed to create notifications", zap.Error(err), zap.Int("count", len(notifications)))
		return fmt.Errorf("create notifications: %w", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `SELECT id, user_id, type, title, message, COALESCE(related_id, ''), read, created_at
		FROM notifications WHERE user_id = ?`
	args := []interface{}{userID}

	if unreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// CountUnread returns the number of unread notifications for a user.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`

	var count int
	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		r.logger.Error("Failed to count unread notifications", zap.Error(err), zap.String("user_id", userID))
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification read. The ownership condition is part of
// the statement so a user cannot touch someone else's notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: notification %s", errs.ErrNotFound, id)
	}
	return nil
}

// MarkAllRead marks all of a user's notifications read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to mark notifications read", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
