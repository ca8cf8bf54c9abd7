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

// LeaveTypeRepository reads the leave type catalog from SQLite. The catalog
// is seeded by migration and managed out of band.
type LeaveTypeRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewLeaveTypeRepository creates a new LeaveTypeRepository.
func NewLeaveTypeRepository(db *sqlite.DB, logger *zap.Logger) *LeaveTypeRepository {
	return &LeaveTypeRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID returns a leave type by ID, or (nil, nil) when not found.
func (r *LeaveTypeRepository) GetByID(ctx context.Context, id string) (*entity.LeaveType, error) {
	query := `SELECT id, name, max_days, active FROM leave_types WHERE id = ?`

	var lt entity.LeaveType
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).
		Scan(&lt.ID, &lt.Name, &lt.MaxDays, &lt.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get leave type", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("get leave type: %w", err)
	}
	return &lt, nil
}

// List returns the leave type catalog, optionally restricted to active types.
func (r *LeaveTypeRepository) List(ctx context.Context, activeOnly bool) ([]*entity.LeaveType, error) {
	query := `SELECT id, name, max_days, active FROM leave_types`
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list leave types", zap.Error(err))
		return nil, fmt.Errorf("list leave types: %w", err)
	}
	defer rows.Close()

	var types []*entity.LeaveType
	for rows.Next() {
		var lt entity.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.MaxDays, &lt.Active); err != nil {
			return nil, fmt.Errorf("scan leave type: %w", err)
		}
		types = append(types, &lt)
	}
	return types, rows.Err()
}

// Verify interface compliance
var _ port.LeaveTypeRepository = (*LeaveTypeRepository)(nil)
