package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// LeaveRequest represents an employee leave request. It is created in
// PENDING and transitioned exactly once by a reviewer (APPROVED/REJECTED) or
// cancelled by the requester or an admin while still PENDING.
type LeaveRequest struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Days        int       `json:"days"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	AdminID     string    `json:"admin_id,omitempty"`
	AdminNotes  string    `json:"admin_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeaveType is a catalog entry for a kind of leave (annual, sick, ...).
type LeaveType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	MaxDays int    `json:"max_days"`
	Active  bool   `json:"active"`
}

// NewLeaveRequest creates a PENDING leave request. The weekday count is
// computed once here and is immutable thereafter.
func NewLeaveRequest(requesterID, leaveTypeID string, startDate, endDate time.Time, reason string) (*LeaveRequest, error) {
	if requesterID == "" {
		return nil, fmt.Errorf("%w: requester is required", errs.ErrValidation)
	}
	if leaveTypeID == "" {
		return nil, fmt.Errorf("%w: leave type is required", errs.ErrValidation)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			errs.ErrValidation, endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", errs.ErrValidation)
	}

	now := time.Now()
	return &LeaveRequest{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		LeaveTypeID: leaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        WeekdayCount(startDate, endDate),
		Reason:      reason,
		Status:      LeaveStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// WeekdayCount counts the days in [start, end] inclusive whose weekday is
// neither Saturday nor Sunday. A range entirely on a weekend counts zero.
func WeekdayCount(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
