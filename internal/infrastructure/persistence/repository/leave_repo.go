package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
)

// LeaveRepository implements port.LeaveRepository using SQLite.
type LeaveRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewLeaveRepository creates a new LeaveRepository.
func NewLeaveRepository(db *sqlite.DB, logger *zap.Logger) *LeaveRepository {
	return &LeaveRepository{
		db:     db,
		logger: logger,
	}
}

const leaveColumns = `id, requester_id, leave_type_id, start_date, end_date, days,
	reason, status, admin_id, admin_notes, created_at, updated_at`

// Create inserts a new leave request.
func (r *LeaveRepository) Create(ctx context.Context, leave *entity.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		leave.ID, leave.RequesterID, leave.LeaveTypeID, leave.StartDate, leave.EndDate,
		leave.Days, leave.Reason, leave.Status,
		nullable(leave.AdminID), nullable(leave.AdminNotes),
		leave.CreatedAt, leave.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create leave request", zap.Error(err), zap.String("id", leave.ID))
		return fmt.Errorf("create leave request: %w", err)
	}
	return nil
}

// GetByID returns a leave request by ID, or (nil, nil) when not found.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = ?`

	row := r.db.Executor(ctx).QueryRowContext(ctx, query, id)
	leave, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get leave request", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return leave, nil
}

// List returns leave requests matching the filter, newest first.
func (r *LeaveRepository) List(ctx context.Context, filter port.LeaveFilter) ([]*entity.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.RequesterID != "" {
		query += " AND requester_id = ?"
		args = append(args, filter.RequesterID)
	}
	if filter.LeaveTypeID != "" {
		query += " AND leave_type_id = ?"
		args = append(args, filter.LeaveTypeID)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list leave requests", zap.Error(err))
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []*entity.LeaveRequest
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		leaves = append(leaves, leave)
	}
	return leaves, rows.Err()
}

// Count returns the number of leave requests matching the filter.
func (r *LeaveRepository) Count(ctx context.Context, filter port.LeaveFilter) (int, error) {
	query := `SELECT COUNT(*) FROM leave_requests WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.RequesterID != "" {
		query += " AND requester_id = ?"
		args = append(args, filter.RequesterID)
	}
	if filter.LeaveTypeID != "" {
		query += " AND leave_type_id = ?"
		args = append(args, filter.LeaveTypeID)
	}

	var count int
	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error("Failed to count leave requests", zap.Error(err))
		return 0, fmt.Errorf("count leave requests: %w", err)
	}
	return count, nil
}

// Transition applies the compare-and-swap status update.
func (r *LeaveRepository) Transition(ctx context.Context, id string, from, to string, patch port.LeavePatch) error {
	query := `
		UPDATE leave_requests
		SET status = ?,
			admin_id = COALESCE(?, admin_id),
			admin_notes = COALESCE(?, admin_notes),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		to, patch.AdminID, patch.AdminNotes, id, from,
	)
	if err != nil {
		r.logger.Error("Failed to transition leave request",
			zap.Error(err), zap.String("id", id), zap.String("to", to))
		return fmt.Errorf("transition leave request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transition leave request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: leave request %s is no longer %s", errs.ErrInvalidTransition, id, from)
	}
	return nil
}

func scanLeave(row scanner) (*entity.LeaveRequest, error) {
	var (
		leave   entity.LeaveRequest
		adminID sql.NullString
		notes   sql.NullString
	)

	err := row.Scan(
		&leave.ID, &leave.RequesterID, &leave.LeaveTypeID, &leave.StartDate, &leave.EndDate,
		&leave.Days, &leave.Reason, &leave.Status, &adminID, &notes,
		&leave.CreatedAt, &leave.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	leave.AdminID = adminID.String
	leave.AdminNotes = notes.String
	return &leave, nil
}

// Verify interface compliance
var _ port.LeaveRepository = (*LeaveRepository)(nil)
