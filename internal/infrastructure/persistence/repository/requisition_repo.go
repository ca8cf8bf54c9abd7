// Package repository contains the SQLite-backed implementations of the
// application's persistence ports.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/infrastructure/persistence/sqlite"
)

// RequisitionRepository implements port.RequisitionRepository using SQLite.
type RequisitionRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewRequisitionRepository creates a new RequisitionRepository.
func NewRequisitionRepository(db *sqlite.DB, logger *zap.Logger) *RequisitionRepository {
	return &RequisitionRepository{
		db:     db,
		logger: logger,
	}
}

const requisitionColumns = `id, payee, amount, currency, details, customer, code, department,
	status, prepared_by_id, authorised_by_id, paid_by_id, rejected_by_id, admin_notes,
	paid_at, rejected_at, closed_at, created_at, updated_at`

// Create inserts a new requisition.
func (r *RequisitionRepository) Create(ctx context.Context, req *entity.CashRequisition) error {
	query := `
		INSERT INTO cash_requisitions (` + requisitionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		req.ID, req.Payee, req.Amount.String(), req.Currency, req.Details,
		req.Customer, req.Code, req.Department, req.Status, req.PreparedByID,
		nullable(req.AuthorisedByID), nullable(req.PaidByID), nullable(req.RejectedByID),
		nullable(req.AdminNotes), req.PaidAt, req.RejectedAt, req.ClosedAt,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create requisition", zap.Error(err), zap.String("id", req.ID))
		return fmt.Errorf("create requisition: %w", err)
	}
	return nil
}

// GetByID returns a requisition by ID, or (nil, nil) when not found.
func (r *RequisitionRepository) GetByID(ctx context.Context, id string) (*entity.CashRequisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM cash_requisitions WHERE id = ?`

	row := r.db.Executor(ctx).QueryRowContext(ctx, query, id)
	req, err := scanRequisition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get requisition", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return req, nil
}

// List returns requisitions matching the filter, newest first.
func (r *RequisitionRepository) List(ctx context.Context, filter port.RequisitionFilter) ([]*entity.CashRequisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM cash_requisitions WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.PreparedByID != "" {
		query += " AND prepared_by_id = ?"
		args = append(args, filter.PreparedByID)
	}
	if filter.Department != "" {
		query += " AND department = ?"
		args = append(args, filter.Department)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list requisitions", zap.Error(err))
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()

	var reqs []*entity.CashRequisition
	for rows.Next() {
		req, err := scanRequisition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Count returns the number of requisitions matching the filter.
func (r *RequisitionRepository) Count(ctx context.Context, filter port.RequisitionFilter) (int, error) {
	query := `SELECT COUNT(*) FROM cash_requisitions WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.PreparedByID != "" {
		query += " AND prepared_by_id = ?"
		args = append(args, filter.PreparedByID)
	}
	if filter.Department != "" {
		query += " AND department = ?"
		args = append(args, filter.Department)
	}

	var count int
	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error("Failed to count requisitions", zap.Error(err))
		return 0, fmt.Errorf("count requisitions: %w", err)
	}
	return count, nil
}

// Transition applies the compare-and-swap status update. The WHERE clause
// carries the expected current status, so a stale caller mutates nothing.
func (r *RequisitionRepository) Transition(ctx context.Context, id string, from, to string, patch port.RequisitionPatch) error {
	query := `
		UPDATE cash_requisitions
		SET status = ?,
			authorised_by_id = COALESCE(?, authorised_by_id),
			paid_by_id = COALESCE(?, paid_by_id),
			rejected_by_id = COALESCE(?, rejected_by_id),
			admin_notes = COALESCE(?, admin_notes),
			paid_at = COALESCE(?, paid_at),
			rejected_at = COALESCE(?, rejected_at),
			closed_at = COALESCE(?, closed_at),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		to,
		patch.AuthorisedByID, patch.PaidByID, patch.RejectedByID, patch.AdminNotes,
		patch.PaidAt, patch.RejectedAt, patch.ClosedAt,
		id, from,
	)
	if err != nil {
		r.logger.Error("Failed to transition requisition",
			zap.Error(err), zap.String("id", id), zap.String("to", to))
		return fmt.Errorf("transition requisition: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transition requisition: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: requisition %s is no longer %s", errs.ErrInvalidTransition, id, from)
	}
	return nil
}

// scanRequisition reads one row regardless of whether it came from QueryRow
// or Rows.
func scanRequisition(row scanner) (*entity.CashRequisition, error) {
	var (
		req        entity.CashRequisition
		amount     string
		authorised sql.NullString
		paidBy     sql.NullString
		rejectedBy sql.NullString
		notes      sql.NullString
		paidAt     sql.NullTime
		rejectedAt sql.NullTime
		closedAt   sql.NullTime
	)

	err := row.Scan(
		&req.ID, &req.Payee, &amount, &req.Currency, &req.Details,
		&req.Customer, &req.Code, &req.Department, &req.Status, &req.PreparedByID,
		&authorised, &paidBy, &rejectedBy, &notes,
		&paidAt, &rejectedAt, &closedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	req.AuthorisedByID = authorised.String
	req.PaidByID = paidBy.String
	req.RejectedByID = rejectedBy.String
	req.AdminNotes = notes.String
	if paidAt.Valid {
		req.PaidAt = &paidAt.Time
	}
	if rejectedAt.Valid {
		req.RejectedAt = &rejectedAt.Time
	}
	if closedAt.Valid {
		req.ClosedAt = &closedAt.Time
	}
	return &req, nil
}

// Verify interface compliance
var _ port.RequisitionRepository = (*RequisitionRepository)(nil)
