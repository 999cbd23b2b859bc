package meeting

import "encoding/json"

// CreateFolderRequest represents the request to create a folder
type CreateFolderRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=20"`
}

// UpdateFolderRequest represents the request to update a folder
type UpdateFolderRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=20"`
}

// FolderMemberRequest shares a folder with a user
type FolderMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Role   string `json:"role" validate:"omitempty,oneof=viewer editor"`
}

// FolderMemberRoleRequest changes a member's role
type FolderMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=viewer editor"`
}

// CreateMeetingRequest represents the request to schedule a meeting
type CreateMeetingRequest struct {
	Title          string          `json:"title" validate:"required,min=1,max=255"`
	Description    *string         `json:"description,omitempty"`
	MeetingType    string          `json:"meeting_type" validate:"omitempty,oneof=regular periodic emergency workshop"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string          `json:"start_time" validate:"required,datetime=15:04"`
	Duration       int             `json:"duration" validate:"min=0,max=1440"`
	Location       *string         `json:"location,omitempty" validate:"omitempty,max=255"`
	MeetingLink    *string         `json:"meeting_link,omitempty" validate:"omitempty,url"`
	AttendanceType string          `json:"attendance_type" validate:"omitempty,oneof=in_person online hybrid"`
	FolderID       *string         `json:"folder_id,omitempty" validate:"omitempty,uuid"`
	Metadata       json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateMeetingRequest represents the request to update a meeting; omitted fields are kept
type UpdateMeetingRequest struct {
	Version          int             `json:"version" validate:"min=0"`
	Title            *string         `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description      *string         `json:"description,omitempty"`
	MeetingType      *string         `json:"meeting_type,omitempty" validate:"omitempty,oneof=regular periodic emergency workshop"`
	Date             *string         `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime        *string         `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	Duration         *int            `json:"duration,omitempty" validate:"omitempty,min=1,max=1440"`
	Location         *string         `json:"location,omitempty" validate:"omitempty,max=255"`
	MeetingLink      *string         `json:"meeting_link,omitempty" validate:"omitempty,url"`
	AttendanceType   *string         `json:"attendance_type,omitempty" validate:"omitempty,oneof=in_person online hybrid"`
	FolderID         *string         `json:"folder_id,omitempty" validate:"omitempty,uuid"`
	RemoveFromFolder bool            `json:"remove_from_folder"`
	Metadata         json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateMeetingStatusRequest moves a meeting through its lifecycle
type UpdateMeetingStatusRequest struct {
	Version int    `json:"version" validate:"min=0"`
	Status  string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled postponed"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	FolderID  *string `query:"folder_id" validate:"omitempty,uuid"`
	Status    *string `query:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled postponed"`
	Type      *string `query:"type" validate:"omitempty,oneof=regular periodic emergency workshop"`
	From      *string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        *string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Search    string  `query:"search"`
	Page      int     `query:"page" validate:"min=0"`
	PageSize  int     `query:"page_size" validate:"min=0,max=100"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// AddParticipantRequest invites a user or a guest
type AddParticipantRequest struct {
	UserID *string `json:"user_id,omitempty" validate:"omitempty,uuid"`
	Name   string  `json:"name" validate:"omitempty,max=255"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Role   string  `json:"role" validate:"omitempty,oneof=chairman secretary member observer organizer presenter guest"`
}

// ParticipantRoleRequest changes a participant's role
type ParticipantRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=chairman secretary member observer organizer presenter guest"`
}

// AttendanceRequest records attendance
type AttendanceRequest struct {
	Status string `json:"attendance_status" validate:"required,oneof=pending confirmed attended absent"`
}

// AgendaItemRequest adds an agenda item
type AgendaItemRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Description     *string `json:"description,omitempty"`
	Presenter       *string `json:"presenter,omitempty" validate:"omitempty,max=255"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
}

// UpdateAgendaItemRequest changes an agenda item; omitted fields are kept
type UpdateAgendaItemRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string `json:"description,omitempty"`
	Presenter       *string `json:"presenter,omitempty" validate:"omitempty,max=255"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
}

// ReorderAgendaRequest lists every agenda item id in the new order
type ReorderAgendaRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,uuid"`
}

// MinutesRequest writes the minutes of a meeting
type MinutesRequest struct {
	Content string  `json:"content" validate:"required"`
	Summary *string `json:"summary,omitempty"`
}

// CreateTaskRequest raises a task in a meeting
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	TaskType    string  `json:"task_type" validate:"omitempty,oneof=action_item follow_up decision_implementation"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
	LinkGeneral bool    `json:"link_general"`
}

// UpdateTaskRequest changes a meeting task; omitted fields are kept
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	TaskType    *string `json:"task_type,omitempty" validate:"omitempty,oneof=action_item follow_up decision_implementation"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AssignedTo  *string `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
}

// TaskStatusRequest changes a task status
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// ListTasksRequest represents query parameters for general tasks
type ListTasksRequest struct {
	AssignedTo *string `query:"assigned_to" validate:"omitempty,uuid"`
	Status     *string `query:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	MeetingID  *string `query:"meeting_id" validate:"omitempty,uuid"`
	Mine       bool    `query:"mine"`
	Page       int     `query:"page" validate:"min=0"`
	PageSize   int     `query:"page_size" validate:"min=0,max=100"`
}

// DashboardRequest represents query parameters for the dashboard
type DashboardRequest struct {
	FolderID *string `query:"folder_id" validate:"omitempty,uuid"`
	From     *string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To       *string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
