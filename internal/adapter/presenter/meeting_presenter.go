package presenter

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/idea-hub/internal/adapter/dto/common"
	meetingDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/meeting"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	meetingUsecase "github.com/johnquangdev/idea-hub/internal/usecase/meeting"
)

var folderAccessNames = map[entities.FolderAccess]string{
	entities.FolderAccessNone:   "none",
	entities.FolderAccessViewer: "viewer",
	entities.FolderAccessEditor: "editor",
	entities.FolderAccessOwner:  "owner",
}

// ToFolderResponse converts a folder with the access of p
func ToFolderResponse(f *entities.MeetingFolder, p auth.Principal, locale entities.Locale) *meetingDTO.FolderResponse {
	if f == nil {
		return nil
	}

	members := make([]*meetingDTO.FolderMemberResponse, len(f.Members))
	for i, m := range f.Members {
		members[i] = ToFolderMemberResponse(m, locale)
	}

	return &meetingDTO.FolderResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		OwnerID:     f.OwnerID.String(),
		Access:      folderAccessNames[f.AccessFor(p.UserID, p.IsAdmin())],
		Members:     members,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ToFolderResponses converts a list of folders
func ToFolderResponses(folders []*entities.MeetingFolder, p auth.Principal, locale entities.Locale) []*meetingDTO.FolderResponse {
	out := make([]*meetingDTO.FolderResponse, len(folders))
	for i, f := range folders {
		out[i] = ToFolderResponse(f, p, locale)
	}
	return out
}

// ToFolderMemberResponse converts an ACL entry
func ToFolderMemberResponse(m *entities.FolderMember, locale entities.Locale) *meetingDTO.FolderMemberResponse {
	if m == nil {
		return nil
	}
	return &meetingDTO.FolderMemberResponse{
		UserID:    m.UserID.String(),
		User:      ToUserSummary(m.User),
		Role:      string(m.Role),
		RoleLabel: entities.FolderRoleDisplay(m.Role, locale),
		CreatedAt: m.CreatedAt,
	}
}

// ToMeetingResponse converts a Meeting entity
func ToMeetingResponse(m *entities.Meeting, locale entities.Locale) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meetingDTO.MeetingResponse{
		ID:                  m.ID.String(),
		Title:               m.Title,
		Description:         m.Description,
		MeetingType:         string(m.MeetingType),
		MeetingTypeLabel:    entities.MeetingTypeDisplay(m.MeetingType, locale),
		Date:                m.Date.Format(dateLayout),
		StartTime:           m.StartTime,
		Duration:            m.DurationMinutes,
		StartsAt:            m.StartsAt(time.UTC),
		EndsAt:              m.EndsAt(time.UTC),
		Location:            m.Location,
		MeetingLink:         m.MeetingLink,
		AttendanceType:      string(m.AttendanceType),
		AttendanceTypeLabel: entities.AttendanceTypeDisplay(m.AttendanceType, locale),
		Status:              string(m.Status),
		StatusLabel:         entities.MeetingStatusDisplay(m.Status, locale),
		FolderID:            uuidString(m.FolderID),
		CreatedBy:           m.CreatedBy.String(),
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if len(m.Metadata) > 0 {
		response.Metadata = json.RawMessage(m.Metadata)
	}
	return response
}

// ToMeetingResponses converts a list of meetings
func ToMeetingResponses(meetings []*entities.Meeting, locale entities.Locale) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, len(meetings))
	for i, m := range meetings {
		out[i] = ToMeetingResponse(m, locale)
	}
	return out
}

// ToMeetingListResponse converts a page of meetings
func ToMeetingListResponse(meetings []*entities.Meeting, total int64, page, pageSize int, locale entities.Locale) *meetingDTO.MeetingListResponse {
	return &meetingDTO.MeetingListResponse{
		Meetings:   ToMeetingResponses(meetings, locale),
		Pagination: common.NewPagination(total, page, pageSize),
	}
}

// ToParticipantResponse converts a participant
func ToParticipantResponse(p *entities.MeetingParticipant, locale entities.Locale) *meetingDTO.ParticipantResponse {
	if p == nil {
		return nil
	}
	return &meetingDTO.ParticipantResponse{
		ID:               p.ID.String(),
		MeetingID:        p.MeetingID.String(),
		UserID:           uuidString(p.UserID),
		Name:             p.Name,
		Email:            p.Email,
		Role:             string(p.Role),
		RoleLabel:        entities.RoleDisplay(p.Role, locale),
		AttendanceStatus: string(p.AttendanceStatus),
		AttendanceLabel:  entities.AttendanceDisplay(p.AttendanceStatus, locale),
		CreatedAt:        p.CreatedAt,
	}
}

// ToParticipantResponses converts a list of participants
func ToParticipantResponses(list []*entities.MeetingParticipant, locale entities.Locale) []*meetingDTO.ParticipantResponse {
	out := make([]*meetingDTO.ParticipantResponse, len(list))
	for i, p := range list {
		out[i] = ToParticipantResponse(p, locale)
	}
	return out
}

// ToAgendaResponses converts an ordered agenda
func ToAgendaResponses(items []*entities.MeetingAgendaItem) []*meetingDTO.AgendaItemResponse {
	out := make([]*meetingDTO.AgendaItemResponse, len(items))
	for i, item := range items {
		out[i] = ToAgendaItemResponse(item)
	}
	return out
}

// ToAgendaItemResponse converts one agenda item
func ToAgendaItemResponse(item *entities.MeetingAgendaItem) *meetingDTO.AgendaItemResponse {
	if item == nil {
		return nil
	}
	return &meetingDTO.AgendaItemResponse{
		ID:              item.ID.String(),
		MeetingID:       item.MeetingID.String(),
		Title:           item.Title,
		Description:     item.Description,
		Presenter:       item.Presenter,
		DurationMinutes: item.DurationMinutes,
		Position:        item.Position,
	}
}

// ToMinutesResponse converts the minutes of a meeting
func ToMinutesResponse(m *entities.MeetingMinutes) *meetingDTO.MinutesResponse {
	if m == nil {
		return nil
	}
	return &meetingDTO.MinutesResponse{
		MeetingID:  m.MeetingID.String(),
		Content:    m.Content,
		Summary:    m.Summary,
		RecordedBy: m.RecordedBy.String(),
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToMeetingTaskResponse converts a meeting task
func ToMeetingTaskResponse(t *entities.MeetingTask, locale entities.Locale, now time.Time) *meetingDTO.TaskResponse {
	if t == nil {
		return nil
	}
	meetingID := t.MeetingID.String()
	updated := t.UpdatedAt
	return &meetingDTO.TaskResponse{
		ID:            t.ID.String(),
		MeetingID:     &meetingID,
		Title:         t.Title,
		Description:   t.Description,
		TaskType:      string(t.TaskType),
		Status:        string(t.Status),
		StatusLabel:   entities.TaskStatusDisplay(t.Status, locale),
		DueDate:       dateString(t.DueDate),
		Overdue:       t.IsOverdue(now),
		AssignedTo:    uuidString(t.AssignedTo),
		GeneralTaskID: uuidString(t.GeneralTaskID),
		CreatedBy:     t.CreatedBy.String(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     &updated,
	}
}

// ToMeetingTaskResponses converts the tasks of a meeting
func ToMeetingTaskResponses(tasks []*entities.MeetingTask, locale entities.Locale, now time.Time) []*meetingDTO.TaskResponse {
	out := make([]*meetingDTO.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = ToMeetingTaskResponse(t, locale, now)
	}
	return out
}

// ToTaskResponse converts a general task
func ToTaskResponse(t *entities.Task, locale entities.Locale, now time.Time) *meetingDTO.TaskResponse {
	if t == nil {
		return nil
	}
	updated := t.UpdatedAt
	return &meetingDTO.TaskResponse{
		ID:          t.ID.String(),
		MeetingID:   uuidString(t.MeetingID),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		StatusLabel: entities.TaskStatusDisplay(t.Status, locale),
		DueDate:     dateString(t.DueDate),
		Overdue:     t.IsOverdue(now),
		AssignedTo:  uuidString(t.AssignedTo),
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   &updated,
	}
}

// ToTaskListResponse converts a page of general tasks
func ToTaskListResponse(tasks []*entities.Task, total int64, page, pageSize int, locale entities.Locale, now time.Time) *meetingDTO.TaskListResponse {
	out := make([]*meetingDTO.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskResponse(t, locale, now)
	}
	return &meetingDTO.TaskListResponse{
		Tasks:      out,
		Pagination: common.NewPagination(total, page, pageSize),
	}
}

// ToDashboardResponse converts the dashboard aggregate
func ToDashboardResponse(d *meetingUsecase.Dashboard, locale entities.Locale) *meetingDTO.DashboardResponse {
	if d == nil {
		return nil
	}
	return &meetingDTO.DashboardResponse{
		TotalMeetings:  d.TotalMeetings,
		ByStatus:       d.ByStatus,
		ByType:         d.ByType,
		Upcoming:       ToMeetingResponses(d.Upcoming, locale),
		TasksByStatus:  d.TasksByStatus,
		OverdueTasks:   ToMeetingTaskResponses(d.OverdueTasks, locale, d.GeneratedAt),
		Attendance:     d.Attendance,
		AttendanceRate: d.AttendanceRate,
		GeneratedAt:    d.GeneratedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
