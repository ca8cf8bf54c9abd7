package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// CashRequisition represents a cash requisition moving through the
// multi-step financial approval workflow. Status transitions are monotonic;
// CLOSED and REJECTED are terminal and the record is never deleted.
type CashRequisition struct {
	ID             string          `json:"id"`
	Payee          string          `json:"payee"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Details        string          `json:"details"`
	Customer       string          `json:"customer,omitempty"`
	Code           string          `json:"code,omitempty"`
	Department     string          `json:"department"`
	Status         string          `json:"status"`
	PreparedByID   string          `json:"prepared_by_id"`
	AuthorisedByID string          `json:"authorised_by_id,omitempty"`
	PaidByID       string          `json:"paid_by_id,omitempty"`
	RejectedByID   string          `json:"rejected_by_id,omitempty"`
	AdminNotes     string          `json:"admin_notes,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	RejectedAt     *time.Time      `json:"rejected_at,omitempty"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewCashRequisition creates a requisition in DRAFT owned by the preparing
// employee. Invariants (non-empty payee, positive amount, known currency) are
// enforced here rather than at call sites.
func NewCashRequisition(payee string, amount decimal.Decimal, currency, details, customer, code, department, preparedByID string) (*CashRequisition, error) {
	if strings.TrimSpace(payee) == "" {
		return nil, fmt.Errorf("%w: payee is required", errs.ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", errs.ErrValidation, amount)
	}
	if !validCurrencies[currency] {
		return nil, fmt.Errorf("%w: unsupported currency %q", errs.ErrValidation, currency)
	}
	if strings.TrimSpace(details) == "" {
		return nil, fmt.Errorf("%w: details are required", errs.ErrValidation)
	}
	if preparedByID == "" {
		return nil, fmt.Errorf("%w: preparer is required", errs.ErrValidation)
	}

	now := time.Now()
	return &CashRequisition{
		ID:           uuid.NewString(),
		Payee:        payee,
		Amount:       amount,
		Currency:     currency,
		Details:      details,
		Customer:     customer,
		Code:         code,
		Department:   department,
		Status:       RequisitionStatusDraft,
		PreparedByID: preparedByID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
