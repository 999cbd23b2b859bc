package meeting

import (
	"encoding/json"
	"time"

	"github.com/johnquangdev/idea-hub/internal/adapter/dto/common"
	"github.com/johnquangdev/idea-hub/internal/adapter/dto/user"
)

// FolderResponse represents a folder with the caller's effective access
type FolderResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	Color       *string                 `json:"color,omitempty"`
	OwnerID     string                  `json:"owner_id"`
	Access      string                  `json:"access"`
	Members     []*FolderMemberResponse `json:"members,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// FolderMemberResponse is one ACL entry
type FolderMemberResponse struct {
	UserID    string            `json:"user_id"`
	User      *user.UserSummary `json:"user,omitempty"`
	Role      string            `json:"role"`
	RoleLabel string            `json:"role_label"`
	CreatedAt time.Time         `json:"created_at"`
}

// MeetingResponse represents a meeting with display labels
type MeetingResponse struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         *string         `json:"description,omitempty"`
	MeetingType         string          `json:"meeting_type"`
	MeetingTypeLabel    string          `json:"meeting_type_label"`
	Date                string          `json:"date"`
	StartTime           string          `json:"start_time"`
	Duration            int             `json:"duration"`
	StartsAt            time.Time       `json:"starts_at"`
	EndsAt              time.Time       `json:"ends_at"`
	Location            *string         `json:"location,omitempty"`
	MeetingLink         *string         `json:"meeting_link,omitempty"`
	AttendanceType      string          `json:"attendance_type"`
	AttendanceTypeLabel string          `json:"attendance_type_label"`
	Status              string          `json:"meeting_status"`
	StatusLabel         string          `json:"meeting_status_label"`
	FolderID            *string         `json:"folder_id,omitempty"`
	CreatedBy           string          `json:"created_by"`
	Metadata            json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	Version             int             `json:"version"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// MeetingListResponse is a page of meetings
type MeetingListResponse struct {
	Meetings []*MeetingResponse `json:"meetings"`
	common.Pagination
}

// ParticipantResponse is a meeting participant
type ParticipantResponse struct {
	ID               string    `json:"id"`
	MeetingID        string    `json:"meeting_id"`
	UserID           *string   `json:"user_id,omitempty"`
	Name             string    `json:"name"`
	Email            *string   `json:"email,omitempty"`
	Role             string    `json:"role"`
	RoleLabel        string    `json:"role_label"`
	AttendanceStatus string    `json:"attendance_status"`
	AttendanceLabel  string    `json:"attendance_label"`
	CreatedAt        time.Time `json:"created_at"`
}

// AgendaItemResponse is one agenda point
type AgendaItemResponse struct {
	ID              string  `json:"id"`
	MeetingID       string  `json:"meeting_id"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	Presenter       *string `json:"presenter,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Position        int     `json:"position"`
}

// MinutesResponse is the minutes document of a meeting
type MinutesResponse struct {
	MeetingID  string    `json:"meeting_id"`
	Content    string    `json:"content"`
	Summary    *string   `json:"summary,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TaskResponse is a meeting task or a general task
type TaskResponse struct {
	ID            string     `json:"id"`
	MeetingID     *string    `json:"meeting_id,omitempty"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	TaskType      string     `json:"task_type,omitempty"`
	Status        string     `json:"status"`
	StatusLabel   string     `json:"status_label"`
	DueDate       *string    `json:"due_date,omitempty"`
	Overdue       bool       `json:"overdue"`
	AssignedTo    *string    `json:"assigned_to,omitempty"`
	GeneralTaskID *string    `json:"general_task_id,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// TaskListResponse is a page of general tasks
type TaskListResponse struct {
	Tasks []*TaskResponse `json:"tasks"`
	common.Pagination
}

// DashboardResponse aggregates the meetings the caller can see
type DashboardResponse struct {
	TotalMeetings  int64              `json:"total_meetings"`
	ByStatus       map[string]int64   `json:"by_status"`
	ByType         map[string]int64   `json:"by_type"`
	Upcoming       []*MeetingResponse `json:"upcoming"`
	TasksByStatus  map[string]int64   `json:"tasks_by_status"`
	OverdueTasks   []*TaskResponse    `json:"overdue_tasks"`
	Attendance     map[string]int64   `json:"attendance"`
	AttendanceRate float64            `json:"attendance_rate"`
	GeneratedAt    time.Time          `json:"generated_at"`
}
