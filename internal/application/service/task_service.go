package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Title        string
	Description  string
	AssignedToID string
	DueDate      *time.Time
}

// TaskService manages task assignment and tracking. Unlike requisitions and
// leaves, tasks have no role-gated workflow; any authenticated user can
// create them and the assignee or creator can move them along.
type TaskService interface {
	Create(ctx context.Context, p *entity.Principal, input CreateTaskInput) (*entity.Task, error)
	Get(ctx context.Context, p *entity.Principal, id string) (*entity.Task, error)
	List(ctx context.Context, p *entity.Principal, filter port.TaskFilter) ([]*entity.Task, error)
	UpdateStatus(ctx context.Context, p *entity.Principal, id, status string) (*entity.Task, error)
	Reassign(ctx context.Context, p *entity.Principal, id, assigneeID string) (*entity.Task, error)
}

type taskServiceImpl struct {
	taskRepo port.TaskRepository
	audit    AuditService
	notifier NotificationService
	logger   Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo port.TaskRepository, audit AuditService, notifier NotificationService, logger Logger) TaskService {
	return &taskServiceImpl{
		taskRepo: taskRepo,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
	}
}

// Create creates a task and notifies the assignee unless they created it
// themselves.
func (s *taskServiceImpl) Create(ctx context.Context, p *entity.Principal, input CreateTaskInput) (*entity.Task, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}

	task, err := entity.NewTask(input.Title, input.Description, p.ID, input.AssignedToID, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, storeErr("create task", err)
	}

	_ = s.audit.Record(ctx, p.ID, entity.AuditTaskCreated, entity.EntityTypeTask, task.ID,
		map[string]string{"assigned_to": task.AssignedToID}, userAgentFrom(ctx))

	if task.AssignedToID != p.ID {
		if err := s.notifier.NotifyUser(ctx, task.AssignedToID,
			entity.NotificationTaskAssigned,
			"New Task Assigned",
			fmt.Sprintf("You have been assigned a new task: %s", task.Title),
			task.ID,
		); err != nil {
			s.logger.Error("Failed to notify assignee", "error", err, "task_id", task.ID)
		}
	}

	s.logger.Info("Task created", "id", task.ID, "assigned_to", task.AssignedToID)
	return task, nil
}

// Get returns one task visible to the principal.
func (s *taskServiceImpl) Get(ctx context.Context, p *entity.Principal, id string) (*entity.Task, error) {
	task, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// List returns tasks; employees see tasks they created or are assigned to.
func (s *taskServiceImpl) List(ctx context.Context, p *entity.Principal, filter port.TaskFilter) ([]*entity.Task, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}
	if p.Role == entity.RoleEmployee && filter.CreatedByID == "" {
		filter.AssignedToID = p.ID
	}
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	return tasks, nil
}

// UpdateStatus moves a task along and tells the creator. Completion gets its
// own notification tag.
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, p *entity.Principal, id, status string) (*entity.Task, error) {
	if !entity.ValidTaskStatus(status) {
		return nil, fmt.Errorf("%w: unknown task status %q", errs.ErrValidation, status)
	}

	task, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if task.AssignedToID != p.ID && task.CreatedByID != p.ID && p.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: not involved in this task", errs.ErrForbidden)
	}

	task.Status = status
	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, storeErr("update task", err)
	}

	_ = s.audit.Record(ctx, p.ID, entity.AuditTaskUpdated, entity.EntityTypeTask, task.ID,
		map[string]string{"status": status}, userAgentFrom(ctx))

	if task.CreatedByID != p.ID {
		ntype := entity.NotificationTaskUpdated
		title := "Task Status Updated"
		if status == entity.TaskStatusDone {
			ntype = entity.NotificationTaskCompleted
			title = "Task Completed"
		}
		if err := s.notifier.NotifyUser(ctx, task.CreatedByID, ntype, title,
			fmt.Sprintf("Task %q status changed to %s", task.Title, status), task.ID); err != nil {
			s.logger.Error("Failed to notify task creator", "error", err, "task_id", task.ID)
		}
	}

	return task, nil
}

// Reassign hands the task to a different employee and notifies them.
func (s *taskServiceImpl) Reassign(ctx context.Context, p *entity.Principal, id, assigneeID string) (*entity.Task, error) {
	if assigneeID == "" {
		return nil, fmt.Errorf("%w: assignee is required", errs.ErrValidation)
	}

	task, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if task.CreatedByID != p.ID && p.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: only the creator may reassign", errs.ErrForbidden)
	}

	task.AssignedToID = assigneeID
	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, storeErr("update task", err)
	}

	_ = s.audit.Record(ctx, p.ID, entity.AuditTaskUpdated, entity.EntityTypeTask, task.ID,
		map[string]string{"assigned_to": assigneeID}, userAgentFrom(ctx))

	if assigneeID != p.ID {
		if err := s.notifier.NotifyUser(ctx, assigneeID,
			entity.NotificationTaskAssigned,
			"Task Assigned",
			fmt.Sprintf("You have been assigned to task: %s", task.Title),
			task.ID,
		); err != nil {
			s.logger.Error("Failed to notify new assignee", "error", err, "task_id", task.ID)
		}
	}

	return task, nil
}

func (s *taskServiceImpl) load(ctx context.Context, p *entity.Principal, id string) (*entity.Task, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("load task", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %s", errs.ErrNotFound, id)
	}
	return task, nil
}
