package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

var meetingGroupColumns = map[string]bool{"meeting_status": true, "meeting_type": true}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting.Version == 0 {
		meeting.Version = 1
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(meeting).Error
}

// FindByID retrieves a meeting with its folder ACL loaded
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Folder.Members").
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update writes the meeting under the optimistic version check
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND version = ?", meeting.ID, meeting.Version).
		Updates(map[string]interface{}{
			"title":            meeting.Title,
			"description":      meeting.Description,
			"meeting_type":     meeting.MeetingType,
			"date":             meeting.Date.Format(dateLayout),
			"start_time":       meeting.StartTime,
			"duration_minutes": meeting.DurationMinutes,
			"location":         meeting.Location,
			"meeting_link":     meeting.MeetingLink,
			"attendance_type":  meeting.AttendanceType,
			"meeting_status":   meeting.Status,
			"folder_id":        meeting.FolderID,
			"metadata":         meeting.Metadata,
			"version":          gorm.Expr("version + 1"),
			"updated_at":       now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrVersionConflict
	}

	meeting.Version++
	meeting.UpdatedAt = now
	return nil
}

// Delete removes a meeting; participants, agenda, minutes and meeting tasks cascade
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := applyMeetingFilters(r.db.WithContext(ctx).Model(&entities.Meeting{}), filters)

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("meetings.date %s, meetings.start_time %s", sortOrder, sortOrder))

	// Apply pagination
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Preload("Folder").Find(&meetings).Error
	return meetings, total, err
}

// CountByFolder counts meetings filed in a folder
func (r *meetingRepository) CountByFolder(ctx context.Context, folderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error
	return count, err
}

// CountGrouped counts matching meetings grouped by status or type
func (r *meetingRepository) CountGrouped(ctx context.Context, filters repositories.MeetingFilters, column string) (map[string]int64, error) {
	if !meetingGroupColumns[column] {
		return nil, fmt.Errorf("unsupported group column %q", column)
	}

	var rows []groupedCount
	err := applyMeetingFilters(r.db.WithContext(ctx).Model(&entities.Meeting{}), filters).
		Select(fmt.Sprintf("meetings.%s AS label, COUNT(*) AS total", column)).
		Group("meetings." + column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// Create creates a new participant record
func (r *participantRepository) Create(ctx context.Context, participant *entities.MeetingParticipant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(participant).Error
}

// FindByID retrieves a participant by ID
func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByMeetingAndUser retrieves the participant entry of a user in a meeting
func (r *participantRepository) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByRole returns the participants of a meeting holding role
func (r *participantRepository) FindByRole(ctx context.Context, meetingID uuid.UUID, role entities.ParticipantRole) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND role = ?", meetingID, role).
		Find(&participants).Error
	return participants, err
}

// ListByMeeting retrieves all participants of a meeting
func (r *participantRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

// Update updates an existing participant
func (r *participantRepository) Update(ctx context.Context, participant *entities.MeetingParticipant) error {
	participant.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(participant).Error
}

// Delete deletes a participant record
func (r *participantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingParticipant{}, "id = ?", id).Error
}

// CountAttendance counts participants of matching meetings by attendance status
func (r *participantRepository) CountAttendance(ctx context.Context, filters repositories.MeetingFilters) (map[string]int64, error) {
	db := r.db.WithContext(ctx)

	var rows []groupedCount
	err := db.Model(&entities.MeetingParticipant{}).
		Where("meeting_id IN (?)", meetingIDs(db, filters)).
		Select("attendance_status AS label, COUNT(*) AS total").
		Group("attendance_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// agendaRepository implements the AgendaRepository interface
type agendaRepository struct {
	db *gorm.DB
}

// NewAgendaRepository creates a new agenda repository
func NewAgendaRepository(db *gorm.DB) repositories.AgendaRepository {
	return &agendaRepository{db: db}
}

func (r *agendaRepository) Create(ctx context.Context, item *entities.MeetingAgendaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *agendaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingAgendaItem, error) {
	var item entities.MeetingAgendaItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *agendaRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingAgendaItem, error) {
	var items []*entities.MeetingAgendaItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *agendaRepository) Update(ctx context.Context, item *entities.MeetingAgendaItem) error {
	item.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *agendaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingAgendaItem{}, "id = ?", id).Error
}

// NextPosition returns the position after the last item of a meeting
func (r *agendaRepository) NextPosition(ctx context.Context, meetingID uuid.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&entities.MeetingAgendaItem{}).
		Where("meeting_id = ?", meetingID).
		Select("COALESCE(MAX(position) + 1, 0)").
		Scan(&next).Error
	return next, err
}

// Reorder assigns positions following ids. Every id must belong to the meeting.
func (r *agendaRepository) Reorder(ctx context.Context, meetingID uuid.UUID, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for position, id := range ids {
			result := tx.Model(&entities.MeetingAgendaItem{}).
				Where("id = ? AND meeting_id = ?", id, meetingID).
				Updates(map[string]interface{}{"position": position, "updated_at": now})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// minutesRepository implements the MinutesRepository interface
type minutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *gorm.DB) repositories.MinutesRepository {
	return &minutesRepository{db: db}
}

func (r *minutesRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingMinutes, error) {
	var minutes entities.MeetingMinutes
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&minutes).Error; err != nil {
		return nil, err
	}
	return &minutes, nil
}

// Upsert creates or replaces the minutes of a meeting
func (r *minutesRepository) Upsert(ctx context.Context, minutes *entities.MeetingMinutes) error {
	minutes.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "summary", "recorded_by", "updated_at"}),
		}).
		Create(minutes).Error
	if err != nil {
		return err
	}
	// reload so the caller sees the surviving row's id and created_at
	found, err := r.FindByMeeting(ctx, minutes.MeetingID)
	if err != nil {
		return err
	}
	*minutes = *found
	return nil
}
