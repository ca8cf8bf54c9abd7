package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

func storedTask(t *testing.T) *entity.Task {
	t.Helper()
	task, err := entity.NewTask("Reconcile float", "", admin.ID, employee.ID, nil)
	require.NoError(t, err)
	return task
}

func newTaskService(repo *mockTaskRepo, audit *recordingAudit, notifier *recordingNotifier) TaskService {
	return NewTaskService(repo, audit, notifier, &mockLogger{})
}

func TestTaskService_CreateNotifiesAssignee(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTaskService(&mockTaskRepo{}, &recordingAudit{}, notifier)

	task, err := svc.Create(context.Background(), admin, CreateTaskInput{
		Title:        "Reconcile float",
		AssignedToID: employee.ID,
	})
	require.NoError(t, err)
	require.Equal(t, entity.TaskStatusTodo, task.Status)
	require.Equal(t, []string{entity.NotificationTaskAssigned}, notifier.userTypes)
	require.Equal(t, []string{employee.ID}, notifier.recipients)
}

func TestTaskService_SelfAssignmentSkipsNotification(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTaskService(&mockTaskRepo{}, &recordingAudit{}, notifier)

	_, err := svc.Create(context.Background(), employee, CreateTaskInput{
		Title:        "File expense report",
		AssignedToID: employee.ID,
	})
	require.NoError(t, err)
	require.Empty(t, notifier.userTypes)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	stored := storedTask(t)
	repo := &mockTaskRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Task, error) {
			return stored, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := newTaskService(repo, &recordingAudit{}, notifier)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, employee, stored.ID, "NOT_A_STATUS")
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.UpdateStatus(ctx, otherEmp, stored.ID, entity.TaskStatusInProgress)
	require.ErrorIs(t, err, errs.ErrForbidden)

	task, err := svc.UpdateStatus(ctx, employee, stored.ID, entity.TaskStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, entity.TaskStatusInProgress, task.Status)
	require.Equal(t, []string{entity.NotificationTaskUpdated}, notifier.userTypes)

	// Completion has its own notification tag, still aimed at the creator.
	_, err = svc.UpdateStatus(ctx, employee, stored.ID, entity.TaskStatusDone)
	require.NoError(t, err)
	require.Equal(t, []string{
		entity.NotificationTaskUpdated,
		entity.NotificationTaskCompleted,
	}, notifier.userTypes)
	require.Equal(t, []string{admin.ID, admin.ID}, notifier.recipients)
}

func TestTaskService_Reassign(t *testing.T) {
	stored := storedTask(t)
	repo := &mockTaskRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.Task, error) {
			return stored, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := newTaskService(repo, &recordingAudit{}, notifier)
	ctx := context.Background()

	_, err := svc.Reassign(ctx, employee, stored.ID, otherEmp.ID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	task, err := svc.Reassign(ctx, admin, stored.ID, otherEmp.ID)
	require.NoError(t, err)
	require.Equal(t, otherEmp.ID, task.AssignedToID)
	require.Equal(t, []string{entity.NotificationTaskAssigned}, notifier.userTypes)
	require.Equal(t, []string{otherEmp.ID}, notifier.recipients)
}
