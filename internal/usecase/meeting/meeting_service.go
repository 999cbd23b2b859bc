package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/cache"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

const (
	defaultPageSize        = 20
	maxPageSize            = 100
	defaultDurationMinutes = 60
)

// MeetingService handles meetings, their folders and everything recorded in them
type MeetingService struct {
	meetingRepo     repositories.MeetingRepository
	participantRepo repositories.ParticipantRepository
	agendaRepo      repositories.AgendaRepository
	minutesRepo     repositories.MinutesRepository
	taskRepo        repositories.TaskRepository
	folderRepo      repositories.FolderRepository
	userRepo        repositories.UserRepository
	publisher       events.Publisher
	logger          *zap.Logger

	cache    cache.Store
	cacheTTL time.Duration
	now      func() time.Time
}

// Option configures optional collaborators of the service
type Option func(*MeetingService)

// WithDashboardCache caches dashboards in store for ttl
func WithDashboardCache(store cache.Store, ttl time.Duration) Option {
	return func(s *MeetingService) {
		s.cache = store
		s.cacheTTL = ttl
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *MeetingService) { s.now = now }
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	participantRepo repositories.ParticipantRepository,
	agendaRepo repositories.AgendaRepository,
	minutesRepo repositories.MinutesRepository,
	taskRepo repositories.TaskRepository,
	folderRepo repositories.FolderRepository,
	userRepo repositories.UserRepository,
	publisher events.Publisher,
	logger *zap.Logger,
	opts ...Option,
) *MeetingService {
	if publisher == nil {
		publisher = events.Nop
	}
	s := &MeetingService{
		meetingRepo:     meetingRepo,
		participantRepo: participantRepo,
		agendaRepo:      agendaRepo,
		minutesRepo:     minutesRepo,
		taskRepo:        taskRepo,
		folderRepo:      folderRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// access is what the caller may do with one meeting
type access struct {
	level       entities.FolderAccess
	participant *entities.MeetingParticipant
}

func (a access) canRead() bool  { return a.level.CanRead() }
func (a access) canWrite() bool { return a.level.CanWrite() }

// canRecordMinutes also admits the chairman, secretary and organizer
func (a access) canRecordMinutes() bool {
	return a.canWrite() || (a.participant != nil && a.participant.Role.CanRecordMinutes())
}

// accessFor resolves the caller's permission: admins and creators own the meeting,
// folder members inherit their folder role, participants can read
func (s *MeetingService) accessFor(ctx context.Context, p auth.Principal, m *entities.Meeting) (access, error) {
	a := access{level: entities.FolderAccessNone}
	if p.IsAdmin() || m.CreatedBy == p.UserID {
		a.level = entities.FolderAccessOwner
	} else if m.Folder != nil {
		a.level = m.Folder.AccessFor(p.UserID, false)
	}

	participant, err := s.participantRepo.FindByMeetingAndUser(ctx, m.ID, p.UserID)
	switch {
	case err == nil:
		a.participant = participant
		if a.level < entities.FolderAccessViewer {
			a.level = entities.FolderAccessViewer
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return a, fmt.Errorf("failed to get participant: %w", err)
	}
	return a, nil
}

// loadMeeting finds a meeting and checks the caller can at least read it
func (s *MeetingService) loadMeeting(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (*entities.Meeting, access, error) {
	m, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access{}, ucerrors.ErrMeetingNotFound
		}
		return nil, access{}, fmt.Errorf("failed to get meeting: %w", err)
	}
	a, err := s.accessFor(ctx, p, m)
	if err != nil {
		return nil, access{}, err
	}
	if !a.canRead() {
		return nil, access{}, ucerrors.ErrMeetingAccessDenied
	}
	return m, a, nil
}

// writableMeeting is loadMeeting plus the write check
func (s *MeetingService) writableMeeting(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (*entities.Meeting, error) {
	m, a, err := s.loadMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}
	if !a.canWrite() {
		return nil, ucerrors.ErrMeetingAccessDenied
	}
	return m, nil
}

// CreateMeeting schedules a meeting, optionally inside a folder the caller can write to
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Date.IsZero() {
		return nil, ucerrors.ErrInvalidInput
	}
	if _, err := entities.ParseStartTime(input.StartTime); err != nil {
		return nil, fmt.Errorf("%w: %v", ucerrors.ErrInvalidInput, err)
	}

	meetingType := input.MeetingType
	if meetingType == "" {
		meetingType = entities.MeetingTypeRegular
	}
	attendance := input.AttendanceType
	if attendance == "" {
		attendance = entities.AttendanceInPerson
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}
	if !meetingType.IsValid() || !attendance.IsValid() || duration < 0 {
		return nil, ucerrors.ErrInvalidInput
	}

	if input.FolderID != nil {
		if _, err := s.folderWithAccess(ctx, input.Principal, *input.FolderID, entities.FolderAccess.CanWrite); err != nil {
			return nil, err
		}
	}

	m := &entities.Meeting{
		Title:           title,
		Description:     trimmed(input.Description),
		MeetingType:     meetingType,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationMinutes: duration,
		Location:        trimmed(input.Location),
		MeetingLink:     trimmed(input.MeetingLink),
		AttendanceType:  attendance,
		Status:          entities.MeetingStatusScheduled,
		FolderID:        input.FolderID,
		CreatedBy:       input.Principal.UserID,
		Metadata:        input.Metadata,
		Version:         1,
	}

	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.logger.Info("✅ Meeting created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("created_by", m.CreatedBy.String()),
		zap.Time("date", m.Date),
	)

	s.publishMeeting(ctx, events.MeetingCreated, m, m)
	return m, nil
}

// GetMeeting returns a meeting the caller can read
func (s *MeetingService) GetMeeting(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (*entities.Meeting, error) {
	m, _, err := s.loadMeeting(ctx, p, meetingID)
	return m, err
}

// CanView reports whether the caller can read the meeting; used to authorize realtime subscriptions
func (s *MeetingService) CanView(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (bool, error) {
	_, _, err := s.loadMeeting(ctx, p, meetingID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ucerrors.ErrMeetingAccessDenied), errors.Is(err, ucerrors.ErrMeetingNotFound):
		return false, nil
	}
	return false, err
}

// ListMeetings lists meetings the caller can see
func (s *MeetingService) ListMeetings(ctx context.Context, p auth.Principal, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	if filters.FolderID != nil {
		if _, err := s.folderWithAccess(ctx, p, *filters.FolderID, entities.FolderAccess.CanRead); err != nil {
			return nil, 0, err
		}
	}
	filters.VisibleTo = visibleTo(p)
	filters.Limit, filters.Offset = page(filters.Limit, filters.Offset)

	meetings, total, err := s.meetingRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// UpdateMeeting changes the schedule and details of a meeting
func (s *MeetingService) UpdateMeeting(ctx context.Context, input UpdateMeetingInput) (*entities.Meeting, error) {
	m, err := s.writableMeeting(ctx, input.Principal, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if input.Version != 0 && input.Version != m.Version {
		return nil, ucerrors.ErrVersionChanged
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ucerrors.ErrInvalidInput
		}
		m.Title = title
	}
	if input.Description != nil {
		m.Description = trimmed(input.Description)
	}
	if input.MeetingType != nil {
		if !input.MeetingType.IsValid() {
			return nil, ucerrors.ErrInvalidInput
		}
		m.MeetingType = *input.MeetingType
	}
	if input.Date != nil {
		m.Date = *input.Date
	}
	if input.StartTime != nil {
		if _, err := entities.ParseStartTime(*input.StartTime); err != nil {
			return nil, fmt.Errorf("%w: %v", ucerrors.ErrInvalidInput, err)
		}
		m.StartTime = *input.StartTime
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return nil, ucerrors.ErrInvalidInput
		}
		m.DurationMinutes = *input.DurationMinutes
	}
	if input.Location != nil {
		m.Location = trimmed(input.Location)
	}
	if input.MeetingLink != nil {
		m.MeetingLink = trimmed(input.MeetingLink)
	}
	if input.AttendanceType != nil {
		if !input.AttendanceType.IsValid() {
			return nil, ucerrors.ErrInvalidInput
		}
		m.AttendanceType = *input.AttendanceType
	}
	if input.Metadata != nil {
		m.Metadata = input.Metadata
	}

	switch {
	case input.RemoveFromFolder:
		m.FolderID = nil
		m.Folder = nil
	case input.FolderID != nil && (m.FolderID == nil || *m.FolderID != *input.FolderID):
		folder, err := s.folderWithAccess(ctx, input.Principal, *input.FolderID, entities.FolderAccess.CanWrite)
		if err != nil {
			return nil, err
		}
		m.FolderID = &folder.ID
		m.Folder = folder
	}

	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, mapWriteError(err, "update meeting")
	}

	s.logger.Info("✅ Meeting updated",
		zap.String("meeting_id", m.ID.String()),
		zap.Int("version", m.Version),
	)
	s.publishMeeting(ctx, events.MeetingUpdated, m, m)
	return m, nil
}

// UpdateMeetingStatus moves the meeting through scheduled, in progress, completed, cancelled or postponed
func (s *MeetingService) UpdateMeetingStatus(ctx context.Context, p auth.Principal, meetingID uuid.UUID, status entities.MeetingStatus, version int) (*entities.Meeting, error) {
	if !status.IsValid() {
		return nil, ucerrors.ErrInvalidMeetingStatus
	}
	m, err := s.writableMeeting(ctx, p, meetingID)
	if err != nil {
		return nil, err
	}
	if version != 0 && version != m.Version {
		return nil, ucerrors.ErrVersionChanged
	}
	if m.Status == status {
		return m, nil
	}

	previous := m.Status
	m.Status = status
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, mapWriteError(err, "update meeting status")
	}

	s.logger.Info("🔄 Meeting status changed",
		zap.String("meeting_id", m.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	s.publishMeeting(ctx, events.MeetingUpdated, m, m)
	return m, nil
}

// DeleteMeeting removes a meeting; only its owner, folder owner or an admin may
func (s *MeetingService) DeleteMeeting(ctx context.Context, p auth.Principal, meetingID uuid.UUID) error {
	m, a, err := s.loadMeeting(ctx, p, meetingID)
	if err != nil {
		return err
	}
	if !a.level.CanManage() {
		return ucerrors.ErrMeetingAccessDenied
	}

	if err := s.meetingRepo.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	s.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", m.ID.String()))
	s.publisher.Publish(ctx, events.ForMeeting(events.MeetingDeleted, m.ID, m.Version, nil))
	return nil
}

// mapWriteError translates repository write failures on a meeting
func mapWriteError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrVersionConflict):
		return ucerrors.ErrVersionChanged
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ucerrors.ErrMeetingNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *MeetingService) publishMeeting(ctx context.Context, t events.Type, m *entities.Meeting, payload interface{}) {
	s.publisher.Publish(ctx, events.ForMeeting(t, m.ID, m.Version, payload))
}

// visibleTo restricts listings for everyone but admins
func visibleTo(p auth.Principal) *uuid.UUID {
	if p.IsAdmin() {
		return nil
	}
	id := p.UserID
	return &id
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Service = (*MeetingService)(nil)
