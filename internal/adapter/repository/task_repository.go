package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

// CreateMeetingTask inserts the meeting task and its optional general task together
func (r *taskRepository) CreateMeetingTask(ctx context.Context, task *entities.MeetingTask, general *entities.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if general != nil {
			if err := tx.Omit(clause.Associations).Create(general).Error; err != nil {
				return err
			}
			task.GeneralTaskID = &general.ID
		}
		return tx.Omit(clause.Associations).Create(task).Error
	})
}

// FindMeetingTask retrieves a meeting task by ID
func (r *taskRepository) FindMeetingTask(ctx context.Context, id uuid.UUID) (*entities.MeetingTask, error) {
	var task entities.MeetingTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByMeeting retrieves the tasks of a meeting, earliest due first
func (r *taskRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingTask, error) {
	var tasks []*entities.MeetingTask
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("due_date ASC NULLS LAST, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// UpdateMeetingTask writes the task and mirrors status, assignee and due date to the linked general task
func (r *taskRepository) UpdateMeetingTask(ctx context.Context, task *entities.MeetingTask) error {
	now := time.Now()
	task.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if task.GeneralTaskID == nil {
			return nil
		}
		return tx.Model(&entities.Task{}).
			Where("id = ?", *task.GeneralTaskID).
			Updates(map[string]interface{}{
				"status":      task.Status,
				"assigned_to": task.AssignedTo,
				"due_date":    task.DueDate,
				"updated_at":  now,
			}).Error
	})
}

// DeleteMeetingTask removes the meeting task and keeps the general task
func (r *taskRepository) DeleteMeetingTask(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.MeetingTask{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindTask retrieves a general task by ID
func (r *taskRepository) FindTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks retrieves general tasks with filters and pagination
func (r *taskRepository) ListTasks(ctx context.Context, filters repositories.TaskFilters) ([]*entities.Task, int64, error) {
	var tasks []*entities.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Task{})

	if filters.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filters.AssignedTo)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.MeetingID != nil {
		query = query.Where("meeting_id = ?", *filters.MeetingID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("due_date ASC NULLS LAST, created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&tasks).Error
	return tasks, total, err
}

// CountByStatus counts meeting tasks of matching meetings by status
func (r *taskRepository) CountByStatus(ctx context.Context, filters repositories.MeetingFilters) (map[string]int64, error) {
	db := r.db.WithContext(ctx)

	var rows []groupedCount
	err := db.Model(&entities.MeetingTask{}).
		Where("meeting_id IN (?)", meetingIDs(db, filters)).
		Select("status AS label, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// ListOverdue returns open meeting tasks whose due date is before today
func (r *taskRepository) ListOverdue(ctx context.Context, filters repositories.MeetingFilters, today time.Time, limit int) ([]*entities.MeetingTask, error) {
	db := r.db.WithContext(ctx)

	var tasks []*entities.MeetingTask
	query := db.Where("meeting_id IN (?)", meetingIDs(db, filters)).
		Where("status IN ?", []entities.TaskStatus{entities.TaskStatusPending, entities.TaskStatusInProgress}).
		Where("due_date < ?", today.Format(dateLayout)).
		Order("due_date ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&tasks).Error
	return tasks, err
}
