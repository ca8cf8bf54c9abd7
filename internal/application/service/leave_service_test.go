package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

func pendingLeave(t *testing.T, status string) *entity.LeaveRequest {
	t.Helper()
	// Mon 2 Mar 2026 to Fri 6 Mar 2026: five weekdays.
	leave, err := entity.NewLeaveRequest(employee.ID, "annual",
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		"family visit")
	require.NoError(t, err)
	leave.Status = status
	return leave
}

func newLeaveService(leaveRepo *mockLeaveRepo, typeRepo *mockLeaveTypeRepo, hrMayReview bool, audit *recordingAudit, notifier *recordingNotifier) LeaveService {
	return NewLeaveService(leaveRepo, typeRepo, hrMayReview, audit, notifier, &mockLogger{})
}

func TestLeaveService_Create(t *testing.T) {
	audit := &recordingAudit{}
	notifier := &recordingNotifier{}
	svc := newLeaveService(&mockLeaveRepo{}, &mockLeaveTypeRepo{}, false, audit, notifier)

	leave, err := svc.Create(context.Background(), employee, CreateLeaveInput{
		LeaveTypeID: "annual",
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Reason:      "family visit",
	})
	require.NoError(t, err)
	require.Equal(t, entity.LeaveStatusPending, leave.Status)
	require.Equal(t, 5, leave.Days)
	require.Equal(t, []string{entity.AuditLeaveRequested}, audit.actions)
	require.Equal(t, []string{entity.NotificationLeavePending}, notifier.reviewerTypes)
}

func TestLeaveService_CreateValidation(t *testing.T) {
	inactive := &mockLeaveTypeRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveType, error) {
			return &entity.LeaveType{ID: id, Name: "Old Leave", Active: false}, nil
		},
	}
	svc := newLeaveService(&mockLeaveRepo{}, inactive, false, &recordingAudit{}, &recordingNotifier{})

	_, err := svc.Create(context.Background(), employee, CreateLeaveInput{
		LeaveTypeID: "old",
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Reason:      "r",
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	capped := &mockLeaveTypeRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveType, error) {
			return &entity.LeaveType{ID: id, Name: "Compassionate Leave", MaxDays: 3, Active: true}, nil
		},
	}
	svc = newLeaveService(&mockLeaveRepo{}, capped, false, &recordingAudit{}, &recordingNotifier{})

	_, err = svc.Create(context.Background(), employee, CreateLeaveInput{
		LeaveTypeID: "compassionate",
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		Reason:      "r",
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestLeaveService_ApproveNotifiesRequester(t *testing.T) {
	stored := pendingLeave(t, entity.LeaveStatusPending)
	repo := &mockLeaveRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
			return stored, nil
		},
	}
	audit := &recordingAudit{}
	notifier := &recordingNotifier{}
	svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, audit, notifier)

	leave, err := svc.Approve(context.Background(), admin, stored.ID, "")
	require.NoError(t, err)
	require.Equal(t, entity.LeaveStatusApproved, leave.Status)
	require.Equal(t, admin.ID, leave.AdminID)
	require.Equal(t, []string{entity.AuditLeaveApproved}, audit.actions)
	require.Equal(t, []string{entity.NotificationLeaveApproved}, notifier.userTypes)
	require.Equal(t, []string{employee.ID}, notifier.recipients)
}

func TestLeaveService_HRReviewIsConfigurable(t *testing.T) {
	run := func(hrMayReview bool) error {
		stored := pendingLeave(t, entity.LeaveStatusPending)
		repo := &mockLeaveRepo{
			getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
				return stored, nil
			},
		}
		svc := newLeaveService(repo, &mockLeaveTypeRepo{}, hrMayReview, &recordingAudit{}, &recordingNotifier{})
		_, err := svc.Approve(context.Background(), hr, stored.ID, "")
		return err
	}

	require.ErrorIs(t, run(false), errs.ErrForbidden)
	require.NoError(t, run(true))
}

func TestLeaveService_RejectRequiresNotes(t *testing.T) {
	stored := pendingLeave(t, entity.LeaveStatusPending)
	repo := &mockLeaveRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
			return stored, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, &recordingAudit{}, notifier)

	_, err := svc.Reject(context.Background(), admin, stored.ID, "")
	require.ErrorIs(t, err, errs.ErrValidation)

	leave, err := svc.Reject(context.Background(), admin, stored.ID, "insufficient cover")
	require.NoError(t, err)
	require.Equal(t, entity.LeaveStatusRejected, leave.Status)
	require.Equal(t, "insufficient cover", leave.AdminNotes)
	require.Equal(t, []string{entity.NotificationLeaveRejected}, notifier.userTypes)
}

func TestLeaveService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		actor   *entity.Principal
		wantErr error
	}{
		{"requester cancels own", employee, nil},
		{"admin cancels any", admin, nil},
		{"other employee cannot cancel", otherEmp, errs.ErrForbidden},
		{"hr cannot cancel", hr, errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := pendingLeave(t, entity.LeaveStatusPending)
			repo := &mockLeaveRepo{
				getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
					return stored, nil
				},
			}
			notifier := &recordingNotifier{}
			svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, &recordingAudit{}, notifier)

			leave, err := svc.Cancel(context.Background(), tt.actor, stored.ID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, entity.LeaveStatusCancelled, leave.Status)
			// Cancellation notifies nobody.
			require.Empty(t, notifier.userTypes)
			require.Empty(t, notifier.reviewerTypes)
		})
	}
}

func TestLeaveService_DecidedLeaveIsFinal(t *testing.T) {
	for _, status := range []string{
		entity.LeaveStatusApproved,
		entity.LeaveStatusRejected,
		entity.LeaveStatusCancelled,
	} {
		stored := pendingLeave(t, status)
		repo := &mockLeaveRepo{
			getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
				return stored, nil
			},
		}
		svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, &recordingAudit{}, &recordingNotifier{})

		_, err := svc.Approve(context.Background(), admin, stored.ID, "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition, "from %s", status)

		_, err = svc.Cancel(context.Background(), admin, stored.ID)
		require.ErrorIs(t, err, errs.ErrInvalidTransition, "from %s", status)
	}
}

func TestLeaveService_ConcurrentDecision(t *testing.T) {
	stored := pendingLeave(t, entity.LeaveStatusPending)
	repo := &mockLeaveRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
			return stored, nil
		},
		transitionFunc: func(ctx context.Context, id string, from, to string, patch port.LeavePatch) error {
			// Another reviewer decided between the read and the write.
			return fmt.Errorf("%w: leave request is no longer %s", errs.ErrInvalidTransition, from)
		},
	}
	audit := &recordingAudit{}
	svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, audit, &recordingNotifier{})

	_, err := svc.Approve(context.Background(), admin, stored.ID, "")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Empty(t, audit.actions)
}

func TestLeaveService_GetOwnership(t *testing.T) {
	stored := pendingLeave(t, entity.LeaveStatusPending)
	repo := &mockLeaveRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.LeaveRequest, error) {
			return stored, nil
		},
	}
	svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, &recordingAudit{}, &recordingNotifier{})
	ctx := context.Background()

	_, err := svc.Get(ctx, employee, stored.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, otherEmp, stored.ID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	// HR reads all leave requests even when not holding review rights.
	_, err = svc.Get(ctx, hr, stored.ID)
	require.NoError(t, err)
}

func TestLeaveService_ListScopesEmployees(t *testing.T) {
	var captured port.LeaveFilter
	repo := &mockLeaveRepo{
		listFunc: func(ctx context.Context, filter port.LeaveFilter) ([]*entity.LeaveRequest, error) {
			captured = filter
			return nil, nil
		},
	}
	svc := newLeaveService(repo, &mockLeaveTypeRepo{}, false, &recordingAudit{}, &recordingNotifier{})

	_, _, err := svc.List(context.Background(), employee, port.LeaveFilter{})
	require.NoError(t, err)
	require.Equal(t, employee.ID, captured.RequesterID)

	_, _, err = svc.List(context.Background(), hr, port.LeaveFilter{})
	require.NoError(t, err)
	require.Empty(t, captured.RequesterID)
}
