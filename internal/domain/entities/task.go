package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is shared by meeting tasks and general tasks
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every known task status
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled}

// IsValid checks if the task status is known
func (s TaskStatus) IsValid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsOpen reports whether work is still expected
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress
}

// TaskType classifies meeting tasks
type TaskType string

const (
	TaskTypeActionItem             TaskType = "action_item"
	TaskTypeFollowUp               TaskType = "follow_up"
	TaskTypeDecisionImplementation TaskType = "decision_implementation"
)

// IsValid checks if the task type is known
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeActionItem, TaskTypeFollowUp, TaskTypeDecisionImplementation:
		return true
	}
	return false
}

// MeetingTask is a task raised in a meeting, optionally mirrored as a general task
type MeetingTask struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	TaskType      TaskType   `gorm:"type:varchar(30);not null;default:'action_item'" json:"task_type"`
	Status        TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DueDate       *time.Time `gorm:"type:date;index" json:"due_date,omitempty"`
	AssignedTo    *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	GeneralTaskID *uuid.UUID `gorm:"type:uuid;index" json:"general_task_id,omitempty"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingTask
func (MeetingTask) TableName() string {
	return "meeting_tasks"
}

// IsOverdue reports whether an open task passed its due date. Due dates are whole days.
func (t *MeetingTask) IsOverdue(now time.Time) bool {
	return isOverdue(t.Status, t.DueDate, now)
}

// Task is an organisation-wide task; meeting tasks can link to one
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	MeetingID   *uuid.UUID `gorm:"type:uuid;index" json:"meeting_id,omitempty"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether an open task passed its due date
func (t *Task) IsOverdue(now time.Time) bool {
	return isOverdue(t.Status, t.DueDate, now)
}

func isOverdue(status TaskStatus, due *time.Time, now time.Time) bool {
	if due == nil || !status.IsOpen() {
		return false
	}
	endOfDue := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return !now.Before(endOfDue)
}
