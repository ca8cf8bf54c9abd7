package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
)

// UserRepository implements port.UserRepository using SQLite.
type UserRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlite.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, email, name, password_hash, role, department, status, created_at, updated_at`

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash,
		string(user.Role), user.Department, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err), zap.String("id", user.ID))
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID, or (nil, nil) when not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail returns a user by email, or (nil, nil) when not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`

	row := r.db.Executor(ctx).QueryRowContext(ctx, query, value)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err), zap.String(column, value))
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListByRoles returns ACTIVE users holding any of the given roles. Used to
// resolve notification reviewer sets.
func (r *UserRepository) ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(roles)-1) + "?"
	query := `SELECT ` + userColumns + ` FROM users
		WHERE status = ? AND role IN (` + placeholders + `) ORDER BY name`

	args := []interface{}{entity.UserStatusActive}
	for _, role := range roles {
		args = append(args, string(role))
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list users by roles", zap.Error(err))
		return nil, fmt.Errorf("list users by roles: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListByStatus returns users in the given account status, oldest first so
// the approval queue is FIFO.
func (r *UserRepository) ListByStatus(ctx context.Context, status string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = ? ORDER BY created_at`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, status)
	if err != nil {
		r.logger.Error("Failed to list users by status", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list users by status: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// UpdateStatus applies the compare-and-swap account status update.
func (r *UserRepository) UpdateStatus(ctx context.Context, id string, from, to string) error {
	query := `
		UPDATE users
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, to, id, from)
	if err != nil {
		r.logger.Error("Failed to update user status",
			zap.Error(err), zap.String("id", id), zap.String("to", to))
		return fmt.Errorf("update user status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %s is no longer %s", errs.ErrInvalidTransition, id, from)
	}
	return nil
}

func scanUser(row scanner) (*entity.User, error) {
	var (
		user entity.User
		role string
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&role, &user.Department, &user.Status,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = entity.Role(role)
	return &user, nil
}

func collectUsers(rows *sql.Rows) ([]*entity.User, error) {
	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
