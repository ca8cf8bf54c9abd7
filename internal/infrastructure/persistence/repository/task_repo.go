package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
)

// TaskRepository implements port.TaskRepository using SQLite.
type TaskRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sqlite.DB, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

const taskColumns = `id, title, description, status, created_by_id, assigned_to_id,
	due_date, created_at, updated_at`

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status,
		task.CreatedByID, task.AssignedToID, task.DueDate,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create task", zap.Error(err), zap.String("id", task.ID))
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID returns a task by ID, or (nil, nil) when not found.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	row := r.db.Executor(ctx).QueryRowContext(ctx, query, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// List returns tasks matching the filter, newest first.
func (r *TaskRepository) List(ctx context.Context, filter port.TaskFilter) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.AssignedToID != "" {
		query += " AND (assigned_to_id = ? OR created_by_id = ?)"
		args = append(args, filter.AssignedToID, filter.AssignedToID)
	}
	if filter.CreatedByID != "" {
		query += " AND created_by_id = ?"
		args = append(args, filter.CreatedByID)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update rewrites the mutable task fields.
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, assigned_to_id = ?, due_date = ?, updated_at = ?
		WHERE id = ?`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.AssignedToID,
		task.DueDate, task.UpdatedAt, task.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Error(err), zap.String("id", task.ID))
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func scanTask(row scanner) (*entity.Task, error) {
	var (
		task    entity.Task
		dueDate sql.NullTime
	)
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status,
		&task.CreatedByID, &task.AssignedToID, &dueDate,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return &task, nil
}

// Verify interface compliance
var _ port.TaskRepository = (*TaskRepository)(nil)
