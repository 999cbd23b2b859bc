package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// TaskRepository defines the interface for meeting tasks and general tasks
type TaskRepository interface {
	// CreateMeetingTask inserts task; when general is not nil it is inserted first
	// in the same transaction and linked through GeneralTaskID
	CreateMeetingTask(ctx context.Context, task *entities.MeetingTask, general *entities.Task) error

	FindMeetingTask(ctx context.Context, id uuid.UUID) (*entities.MeetingTask, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingTask, error)

	// UpdateMeetingTask writes task and, when linked, copies its status to the general task
	UpdateMeetingTask(ctx context.Context, task *entities.MeetingTask) error

	// DeleteMeetingTask removes the meeting task and keeps the general task
	DeleteMeetingTask(ctx context.Context, id uuid.UUID) error

	FindTask(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	ListTasks(ctx context.Context, filters TaskFilters) ([]*entities.Task, int64, error)

	// CountByStatus counts meeting tasks of the meetings matching filters
	CountByStatus(ctx context.Context, filters MeetingFilters) (map[string]int64, error)

	// ListOverdue returns open meeting tasks due before today
	ListOverdue(ctx context.Context, filters MeetingFilters, today time.Time, limit int) ([]*entities.MeetingTask, error)
}

// TaskFilters represents filter options for listing general tasks
type TaskFilters struct {
	AssignedTo *uuid.UUID
	Status     *entities.TaskStatus
	MeetingID  *uuid.UUID
	Limit      int
	Offset     int
}
