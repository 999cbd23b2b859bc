package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting with its folder and folder members
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Update writes the meeting under the optimistic version check
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes a meeting and everything attached to it
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// CountByFolder counts meetings filed in a folder
	CountByFolder(ctx context.Context, folderID uuid.UUID) (int64, error)

	// CountGrouped counts meetings matching filters grouped by column
	// ("meeting_status" or "meeting_type")
	CountGrouped(ctx context.Context, filters MeetingFilters, column string) (map[string]int64, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	FolderID  *uuid.UUID
	Status    *entities.MeetingStatus
	Type      *entities.MeetingType
	From      *time.Time // inclusive date
	To        *time.Time // inclusive date
	Search    string     // Search in title, description, location
	VisibleTo *uuid.UUID // nil for admins
	Limit     int
	Offset    int
	SortOrder string // "asc", "desc" on date then start_time
}

// ParticipantRepository defines the interface for meeting participant data access
type ParticipantRepository interface {
	Create(ctx context.Context, participant *entities.MeetingParticipant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error)
	FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error)

	// FindByRole returns the participants of a meeting holding role
	FindByRole(ctx context.Context, meetingID uuid.UUID, role entities.ParticipantRole) ([]*entities.MeetingParticipant, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)
	Update(ctx context.Context, participant *entities.MeetingParticipant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountAttendance counts participants of the meetings matching filters by attendance status
	CountAttendance(ctx context.Context, filters MeetingFilters) (map[string]int64, error)
}

// AgendaRepository defines the interface for agenda item data access
type AgendaRepository interface {
	Create(ctx context.Context, item *entities.MeetingAgendaItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingAgendaItem, error)

	// ListByMeeting returns items ordered by position
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingAgendaItem, error)
	Update(ctx context.Context, item *entities.MeetingAgendaItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// NextPosition returns the position after the last item of a meeting
	NextPosition(ctx context.Context, meetingID uuid.UUID) (int, error)

	// Reorder assigns positions 0..n-1 following ids in one transaction
	Reorder(ctx context.Context, meetingID uuid.UUID, ids []uuid.UUID) error
}

// MinutesRepository defines the interface for meeting minutes data access
type MinutesRepository interface {
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingMinutes, error)

	// Upsert creates or replaces the minutes of minutes.MeetingID
	Upsert(ctx context.Context, minutes *entities.MeetingMinutes) error
}
