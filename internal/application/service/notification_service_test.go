package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

func TestNotificationService_NotifyReviewersFansOut(t *testing.T) {
	reviewers := []*entity.User{
		{ID: "adm-1", Role: entity.RoleAdmin},
		{ID: "adm-2", Role: entity.RoleAdmin},
		{ID: "hr-1", Role: entity.RoleHR},
	}
	userRepo := &mockUserRepo{
		listByRolesFunc: func(ctx context.Context, roles ...entity.Role) ([]*entity.User, error) {
			require.ElementsMatch(t, []entity.Role{entity.RoleAdmin, entity.RoleHR}, roles)
			return reviewers, nil
		},
	}

	var created []*entity.Notification
	notificationRepo := &mockNotificationRepo{
		createManyFunc: func(ctx context.Context, notifications []*entity.Notification) error {
			created = notifications
			return nil
		},
	}
	svc := NewNotificationService(notificationRepo, userRepo, &mockLogger{})

	err := svc.NotifyReviewers(context.Background(),
		entity.NotificationRequisitionPending, "Cash Requisition Submitted", "msg", "req-1")
	require.NoError(t, err)
	require.Len(t, created, 3)
	for i, n := range created {
		require.Equal(t, reviewers[i].ID, n.UserID)
		require.Equal(t, entity.NotificationRequisitionPending, n.Type)
		require.Equal(t, "req-1", n.RelatedID)
		require.False(t, n.Read)
	}
}

func TestNotificationService_NotifyReviewersEmptySet(t *testing.T) {
	var createCalled bool
	notificationRepo := &mockNotificationRepo{
		createManyFunc: func(ctx context.Context, notifications []*entity.Notification) error {
			createCalled = true
			return nil
		},
	}
	svc := NewNotificationService(notificationRepo, &mockUserRepo{}, &mockLogger{})

	// No reviewers resolved: not an error, and nothing is written.
	err := svc.NotifyReviewers(context.Background(), entity.NotificationLeavePending, "t", "m", "l-1")
	require.NoError(t, err)
	require.False(t, createCalled)
}

func TestNotificationService_NotifyReviewersLookupFailure(t *testing.T) {
	userRepo := &mockUserRepo{
		listByRolesFunc: func(ctx context.Context, roles ...entity.Role) ([]*entity.User, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}
	svc := NewNotificationService(&mockNotificationRepo{}, userRepo, &mockLogger{})

	err := svc.NotifyReviewers(context.Background(), entity.NotificationLeavePending, "t", "m", "l-1")
	require.Error(t, err)
}

func TestNotificationService_ReadOperationsRequirePrincipal(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, &mockUserRepo{}, &mockLogger{})
	ctx := context.Background()

	_, err := svc.ListForUser(ctx, nil, false, 20, 0)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.CountUnread(ctx, &entity.Principal{})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	require.ErrorIs(t, svc.MarkRead(ctx, nil, "n-1"), errs.ErrUnauthenticated)
	require.ErrorIs(t, svc.MarkAllRead(ctx, nil), errs.ErrUnauthenticated)
}

func TestNotificationService_MarkReadUnknownOrForeignIsNotFound(t *testing.T) {
	// The store reports zero matching rows when the id does not exist or
	// belongs to another user; the caller sees a not-found, not a silent 200.
	notificationRepo := &mockNotificationRepo{
		markReadFunc: func(ctx context.Context, id, userID string) error {
			return fmt.Errorf("%w: notification %s", errs.ErrNotFound, id)
		},
	}
	svc := NewNotificationService(notificationRepo, &mockUserRepo{}, &mockLogger{})

	err := svc.MarkRead(context.Background(), employee, "n-missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestNotificationService_MarkReadScopedToOwner(t *testing.T) {
	var gotID, gotUser string
	notificationRepo := &mockNotificationRepo{
		markReadFunc: func(ctx context.Context, id, userID string) error {
			gotID, gotUser = id, userID
			return nil
		},
	}
	svc := NewNotificationService(notificationRepo, &mockUserRepo{}, &mockLogger{})

	err := svc.MarkRead(context.Background(), employee, "n-1")
	require.NoError(t, err)
	require.Equal(t, "n-1", gotID)
	require.Equal(t, employee.ID, gotUser)
}
