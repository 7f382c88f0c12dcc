package deal

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the status of a deal task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskPriority represents the priority of a deal task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// DealTask is a checklist item tagged with the lifecycle stage it belongs to.
// Tasks feed the stage gate's completion ratios.
type DealTask struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Stage       Stage        `json:"stage"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// NewDealTask creates a pending task for a stage
func NewDealTask(title string, stage Stage, priority TaskPriority) DealTask {
	return DealTask{
		ID:       uuid.New(),
		Title:    title,
		Stage:    stage,
		Status:   TaskStatusPending,
		Priority: priority,
	}
}

// IsCompleted returns true if the task has been completed
func (t *DealTask) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Complete marks the task as completed
func (t *DealTask) Complete() {
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
}
