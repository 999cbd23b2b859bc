package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// CreateTask records a task raised in a meeting, optionally mirrored as a general task
func (s *MeetingService) CreateTask(ctx context.Context, input CreateTaskInput) (*entities.MeetingTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ucerrors.ErrInvalidInput
	}
	taskType := input.TaskType
	if taskType == "" {
		taskType = entities.TaskTypeActionItem
	}
	if !taskType.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}

	m, err := s.writableMeeting(ctx, input.Principal, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if input.AssignedTo != nil {
		if err := s.ensureUser(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &entities.MeetingTask{
		MeetingID:   m.ID,
		Title:       title,
		Description: trimmed(input.Description),
		TaskType:    taskType,
		Status:      entities.TaskStatusPending,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.Principal.UserID,
	}

	var general *entities.Task
	if input.LinkGeneral {
		meetingID := m.ID
		general = &entities.Task{
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			DueDate:     task.DueDate,
			AssignedTo:  task.AssignedTo,
			MeetingID:   &meetingID,
			CreatedBy:   task.CreatedBy,
		}
	}

	if err := s.taskRepo.CreateMeetingTask(ctx, task, general); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("✅ Meeting task created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("task_id", task.ID.String()),
		zap.Bool("linked", task.GeneralTaskID != nil),
	)
	s.publishMeeting(ctx, events.TasksChanged, m, task)
	return task, nil
}

// ListTasks lists the tasks of a meeting the caller can read
func (s *MeetingService) ListTasks(ctx context.Context, p auth.Principal, meetingID uuid.UUID) ([]*entities.MeetingTask, error) {
	m, _, err := s.loadMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByMeeting(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask changes a meeting task; the linked general task follows
func (s *MeetingService) UpdateTask(ctx context.Context, input UpdateTaskInput) (*entities.MeetingTask, error) {
	task, err := s.findTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	m, err := s.writableMeeting(ctx, input.Principal, task.MeetingID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ucerrors.ErrInvalidInput
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = trimmed(input.Description)
	}
	if input.TaskType != nil {
		if !input.TaskType.IsValid() {
			return nil, ucerrors.ErrInvalidInput
		}
		task.TaskType = *input.TaskType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ucerrors.ErrInvalidInput
		}
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssignedTo != nil {
		if err := s.ensureUser(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}

	if err := s.taskRepo.UpdateMeetingTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	s.publishMeeting(ctx, events.TasksChanged, m, task)
	return task, nil
}

// UpdateTaskStatus changes only the status; the assignee may do it without write access
func (s *MeetingService) UpdateTaskStatus(ctx context.Context, p auth.Principal, taskID uuid.UUID, status entities.TaskStatus) (*entities.MeetingTask, error) {
	if !status.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	m, a, err := s.loadMeeting(ctx, p, task.MeetingID)
	if err != nil {
		return nil, err
	}
	assignee := task.AssignedTo != nil && *task.AssignedTo == p.UserID
	if !a.canWrite() && !assignee {
		return nil, ucerrors.ErrMeetingAccessDenied
	}

	previous := task.Status
	task.Status = status
	if err := s.taskRepo.UpdateMeetingTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Info("🔄 Task status changed",
		zap.String("task_id", task.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	s.publishMeeting(ctx, events.TasksChanged, m, task)
	return task, nil
}

// DeleteTask removes a meeting task and keeps its general task
func (s *MeetingService) DeleteTask(ctx context.Context, p auth.Principal, taskID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	m, err := s.writableMeeting(ctx, p, task.MeetingID)
	if err != nil {
		return err
	}
	if err := s.taskRepo.DeleteMeetingTask(ctx, task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.publishMeeting(ctx, events.TasksChanged, m, map[string]string{"removed": task.ID.String()})
	return nil
}

// ListGeneralTasks lists organisation-wide tasks
func (s *MeetingService) ListGeneralTasks(ctx context.Context, filters repositories.TaskFilters) ([]*entities.Task, int64, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, 0, ucerrors.ErrInvalidInput
	}
	filters.Limit, filters.Offset = page(filters.Limit, filters.Offset)
	tasks, total, err := s.taskRepo.ListTasks(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list general tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *MeetingService) findTask(ctx context.Context, id uuid.UUID) (*entities.MeetingTask, error) {
	task, err := s.taskRepo.FindMeetingTask(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *MeetingService) ensureUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}
