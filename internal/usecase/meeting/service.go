package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
)

// Service defines the meeting use cases
type Service interface {
	// Folders
	CreateFolder(ctx context.Context, input CreateFolderInput) (*entities.MeetingFolder, error)
	GetFolder(ctx context.Context, p auth.Principal, folderID uuid.UUID) (*entities.MeetingFolder, error)
	ListFolders(ctx context.Context, p auth.Principal) ([]*entities.MeetingFolder, error)
	UpdateFolder(ctx context.Context, input UpdateFolderInput) (*entities.MeetingFolder, error)
	DeleteFolder(ctx context.Context, p auth.Principal, folderID uuid.UUID, force bool) error
	AddFolderMember(ctx context.Context, input FolderMemberInput) (*entities.FolderMember, error)
	UpdateFolderMemberRole(ctx context.Context, input FolderMemberInput) (*entities.FolderMember, error)
	RemoveFolderMember(ctx context.Context, p auth.Principal, folderID, userID uuid.UUID) error

	// Meetings
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)
	GetMeeting(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (*entities.Meeting, error)
	ListMeetings(ctx context.Context, p auth.Principal, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)
	UpdateMeeting(ctx context.Context, input UpdateMeetingInput) (*entities.Meeting, error)
	UpdateMeetingStatus(ctx context.Context, p auth.Principal, meetingID uuid.UUID, status entities.MeetingStatus, version int) (*entities.Meeting, error)
	DeleteMeeting(ctx context.Context, p auth.Principal, meetingID uuid.UUID) error
	CanView(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (bool, error)

	// Participants
	AddParticipant(ctx context.Context, input AddParticipantInput) (*entities.MeetingParticipant, error)
	ListParticipants(ctx context.Context, p auth.Principal, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)
	UpdateParticipantRole(ctx context.Context, p auth.Principal, participantID uuid.UUID, role entities.ParticipantRole) (*entities.MeetingParticipant, error)
	UpdateAttendance(ctx context.Context, p auth.Principal, participantID uuid.UUID, status entities.AttendanceStatus) (*entities.MeetingParticipant, error)
	RemoveParticipant(ctx context.Context, p auth.Principal, participantID uuid.UUID) error

	// Agenda and minutes
	AddAgendaItem(ctx context.Context, input AgendaItemInput) (*entities.MeetingAgendaItem, error)
	ListAgenda(ctx context.Context, p auth.Principal, meetingID uuid.UUID) ([]*entities.MeetingAgendaItem, error)
	UpdateAgendaItem(ctx context.Context, input UpdateAgendaItemInput) (*entities.MeetingAgendaItem, error)
	DeleteAgendaItem(ctx context.Context, p auth.Principal, itemID uuid.UUID) error
	ReorderAgenda(ctx context.Context, p auth.Principal, meetingID uuid.UUID, ids []uuid.UUID) ([]*entities.MeetingAgendaItem, error)
	GetMinutes(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (*entities.MeetingMinutes, error)
	UpsertMinutes(ctx context.Context, input MinutesInput) (*entities.MeetingMinutes, error)

	// Tasks
	CreateTask(ctx context.Context, input CreateTaskInput) (*entities.MeetingTask, error)
	ListTasks(ctx context.Context, p auth.Principal, meetingID uuid.UUID) ([]*entities.MeetingTask, error)
	UpdateTask(ctx context.Context, input UpdateTaskInput) (*entities.MeetingTask, error)
	UpdateTaskStatus(ctx context.Context, p auth.Principal, taskID uuid.UUID, status entities.TaskStatus) (*entities.MeetingTask, error)
	DeleteTask(ctx context.Context, p auth.Principal, taskID uuid.UUID) error
	ListGeneralTasks(ctx context.Context, filters repositories.TaskFilters) ([]*entities.Task, int64, error)

	// Dashboard
	GetDashboard(ctx context.Context, p auth.Principal, input DashboardInput) (*Dashboard, error)
}

// CreateFolderInput represents input for creating a folder
type CreateFolderInput struct {
	Principal   auth.Principal
	Name        string
	Description *string
	Color       *string
}

// UpdateFolderInput carries the folder fields to change
type UpdateFolderInput struct {
	Principal   auth.Principal
	FolderID    uuid.UUID
	Name        *string
	Description *string
	Color       *string
}

// FolderMemberInput shares a folder with a user
type FolderMemberInput struct {
	Principal auth.Principal
	FolderID  uuid.UUID
	UserID    uuid.UUID
	Role      entities.FolderRole
}

// CreateMeetingInput represents input for scheduling a meeting
type CreateMeetingInput struct {
	Principal       auth.Principal
	Title           string
	Description     *string
	MeetingType     entities.MeetingType
	Date            time.Time
	StartTime       string
	DurationMinutes int
	Location        *string
	MeetingLink     *string
	AttendanceType  entities.AttendanceType
	FolderID        *uuid.UUID
	Metadata        datatypes.JSON
}

// UpdateMeetingInput carries the meeting fields to change; nil fields are left alone.
// FolderID moves the meeting, RemoveFromFolder files it nowhere.
type UpdateMeetingInput struct {
	Principal        auth.Principal
	MeetingID        uuid.UUID
	Version          int
	Title            *string
	Description      *string
	MeetingType      *entities.MeetingType
	Date             *time.Time
	StartTime        *string
	DurationMinutes  *int
	Location         *string
	MeetingLink      *string
	AttendanceType   *entities.AttendanceType
	FolderID         *uuid.UUID
	RemoveFromFolder bool
	Metadata         datatypes.JSON
}

// AddParticipantInput invites an account or a guest
type AddParticipantInput struct {
	Principal auth.Principal
	MeetingID uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Email     *string
	Role      entities.ParticipantRole
}

// AgendaItemInput represents a new agenda point
type AgendaItemInput struct {
	Principal       auth.Principal
	MeetingID       uuid.UUID
	Title           string
	Description     *string
	Presenter       *string
	DurationMinutes *int
}

// UpdateAgendaItemInput carries the agenda fields to change
type UpdateAgendaItemInput struct {
	Principal       auth.Principal
	ItemID          uuid.UUID
	Title           *string
	Description     *string
	Presenter       *string
	DurationMinutes *int
}

// MinutesInput replaces the minutes of a meeting
type MinutesInput struct {
	Principal auth.Principal
	MeetingID uuid.UUID
	Content   string
	Summary   *string
}

// CreateTaskInput represents a task raised in a meeting
type CreateTaskInput struct {
	Principal   auth.Principal
	MeetingID   uuid.UUID
	Title       string
	Description *string
	TaskType    entities.TaskType
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
	// LinkGeneral also files the task in the organisation-wide list
	LinkGeneral bool
}

// UpdateTaskInput carries the task fields to change
type UpdateTaskInput struct {
	Principal   auth.Principal
	TaskID      uuid.UUID
	Title       *string
	Description *string
	TaskType    *entities.TaskType
	Status      *entities.TaskStatus
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

// DashboardInput narrows the dashboard to a folder or a date range
type DashboardInput struct {
	FolderID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// Dashboard aggregates meetings and their tasks
type Dashboard struct {
	TotalMeetings  int64                   `json:"total_meetings"`
	ByStatus       map[string]int64        `json:"by_status"`
	ByType         map[string]int64        `json:"by_type"`
	Upcoming       []*entities.Meeting     `json:"upcoming"`
	TasksByStatus  map[string]int64        `json:"tasks_by_status"`
	OverdueTasks   []*entities.MeetingTask `json:"overdue_tasks"`
	Attendance     map[string]int64        `json:"attendance"`
	AttendanceRate float64                 `json:"attendance_rate"`
	GeneratedAt    time.Time               `json:"generated_at"`
}
