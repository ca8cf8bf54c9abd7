package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// Task is a work item assigned to an employee. Task tracking is a simple
// status field, not a role-gated workflow like requisitions and leaves.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	CreatedByID  string     `json:"created_by_id"`
	AssignedToID string     `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var validTaskStatuses = map[string]bool{
	TaskStatusTodo:       true,
	TaskStatusInProgress: true,
	TaskStatusDone:       true,
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	return validTaskStatuses[s]
}

// NewTask creates a TODO task assigned to an employee.
func NewTask(title, description, createdByID, assignedToID string, dueDate *time.Time) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	if assignedToID == "" {
		return nil, fmt.Errorf("%w: assignee is required", errs.ErrValidation)
	}

	now := time.Now()
	return &Task{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		Status:       TaskStatusTodo,
		CreatedByID:  createdByID,
		AssignedToID: assignedToID,
		DueDate:      dueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
