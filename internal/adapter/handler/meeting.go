package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	appErrors "github.com/johnquangdev/idea-hub/errors"
	meetingDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/meeting"
	"github.com/johnquangdev/idea-hub/internal/adapter/presenter"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	meetingUsecase "github.com/johnquangdev/idea-hub/internal/usecase/meeting"
)

// Meeting handles meeting, participant, agenda, minutes, task and dashboard requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
	now            func() time.Time
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateMeeting handles POST /meetings
// @Summary      Schedule a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingDTO.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meetingDTO.MeetingResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Failure      403      {object}  map[string]interface{}  "No write access to the folder"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	date, err := parseDate(&req.Date, "date")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	folderID, err := parseOptionalUUID(req.FolderID, "folder_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request().Context(), meetingUsecase.CreateMeetingInput{
		Principal:       p,
		Title:           req.Title,
		Description:     req.Description,
		MeetingType:     entities.MeetingType(req.MeetingType),
		Date:            *date,
		StartTime:       req.StartTime,
		DurationMinutes: req.Duration,
		Location:        req.Location,
		MeetingLink:     req.MeetingLink,
		AttendanceType:  entities.AttendanceType(req.AttendanceType),
		FolderID:        folderID,
		Metadata:        datatypes.JSON(req.Metadata),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(meeting, locale(c)))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings visible to the caller
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        folder_id   query     string  false  "Folder"
// @Param        status      query     string  false  "Status"
// @Param        type        query     string  false  "Meeting type"
// @Param        from        query     string  false  "From date (YYYY-MM-DD)"
// @Param        to          query     string  false  "To date (YYYY-MM-DD)"
// @Param        search      query     string  false  "Search in title, description and location"
// @Param        page        query     int     false  "Page"
// @Param        page_size   query     int     false  "Page size"
// @Param        sort_order  query     string  false  "asc or desc"
// @Success      200         {object}  meetingDTO.MeetingListResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	page, pageSize := paging(c)

	filters := repositories.MeetingFilters{
		Search:    req.Search,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortOrder: req.SortOrder,
	}
	if filters.FolderID, err = parseOptionalUUID(req.FolderID, "folder_id"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if filters.From, err = parseDate(req.From, "from"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if filters.To, err = parseDate(req.To, "to"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		filters.Status = &status
	}
	if req.Type != nil {
		meetingType := entities.MeetingType(*req.Type)
		filters.Type = &meetingType
	}

	meetings, total, err := h.meetingService.ListMeetings(c.Request().Context(), p, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings, total, page, pageSize, locale(c)))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meetingDTO.MeetingResponse
// @Failure      403  {object}  map[string]interface{}  "Access denied"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingService.GetMeeting(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(meeting, locale(c)))
}

// UpdateMeeting handles PATCH /meetings/:id
// @Summary      Update a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Meeting ID"
// @Param        request  body      meetingDTO.UpdateMeetingRequest  true  "Changes"
// @Success      200      {object}  meetingDTO.MeetingResponse
// @Failure      409      {object}  map[string]interface{}  "Version conflict"
// @Router       /meetings/{id} [patch]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateMeetingInput{
		Principal:        p,
		MeetingID:        id,
		Version:          req.Version,
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime,
		DurationMinutes:  req.Duration,
		Location:         req.Location,
		MeetingLink:      req.MeetingLink,
		RemoveFromFolder: req.RemoveFromFolder,
	}
	if input.Date, err = parseDate(req.Date, "date"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if input.FolderID, err = parseOptionalUUID(req.FolderID, "folder_id"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.MeetingType != nil {
		meetingType := entities.MeetingType(*req.MeetingType)
		input.MeetingType = &meetingType
	}
	if req.AttendanceType != nil {
		attendance := entities.AttendanceType(*req.AttendanceType)
		input.AttendanceType = &attendance
	}
	if len(req.Metadata) > 0 {
		input.Metadata = datatypes.JSON(req.Metadata)
	}

	meeting, err := h.meetingService.UpdateMeeting(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(meeting, locale(c)))
}

// UpdateMeetingStatus handles PATCH /meetings/:id/status
// @Summary      Change a meeting's status
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                                 true  "Meeting ID"
// @Param        request  body      meetingDTO.UpdateMeetingStatusRequest  true  "Status"
// @Success      200      {object}  meetingDTO.MeetingResponse
// @Router       /meetings/{id}/status [patch]
func (h *Meeting) UpdateMeetingStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateMeetingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meeting, err := h.meetingService.UpdateMeetingStatus(c.Request().Context(), p, id, entities.MeetingStatus(req.Status), req.Version)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(meeting, locale(c)))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Security     BearerAuth
// @Param        id   path  string  true  "Meeting ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteMeeting(c.Request().Context(), p, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// AddParticipant handles POST /meetings/:id/participants
// @Summary      Invite a participant
// @Description  Pass user_id for an account, or name and email for a guest
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Meeting ID"
// @Param        request  body      meetingDTO.AddParticipantRequest  true  "Participant"
// @Success      201      {object}  meetingDTO.ParticipantResponse
// @Failure      409      {object}  map[string]interface{}  "Already invited, or a chairman exists"
// @Router       /meetings/{id}/participants [post]
func (h *Meeting) AddParticipant(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AddParticipantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := parseOptionalUUID(req.UserID, "user_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participant, err := h.meetingService.AddParticipant(c.Request().Context(), meetingUsecase.AddParticipantInput{
		Principal: p,
		MeetingID: id,
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      entities.ParticipantRole(req.Role),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToParticipantResponse(participant, locale(c)))
}

// ListParticipants handles GET /meetings/:id/participants
// @Summary      List participants
// @Tags         Participants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {array}   meetingDTO.ParticipantResponse
// @Router       /meetings/{id}/participants [get]
func (h *Meeting) ListParticipants(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	list, err := h.meetingService.ListParticipants(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToParticipantResponses(list, locale(c)))
}

// UpdateParticipantRole handles PATCH /participants/:id/role
// @Summary      Change a participant's role
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                             true  "Participant ID"
// @Param        request  body      meetingDTO.ParticipantRoleRequest  true  "Role"
// @Success      200      {object}  meetingDTO.ParticipantResponse
// @Router       /participants/{id}/role [patch]
func (h *Meeting) UpdateParticipantRole(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ParticipantRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	participant, err := h.meetingService.UpdateParticipantRole(c.Request().Context(), p, id, entities.ParticipantRole(req.Role))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToParticipantResponse(participant, locale(c)))
}

// UpdateAttendance handles PATCH /participants/:id/attendance
// @Summary      Record attendance
// @Description  Meeting editors, or the participant for their own entry
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Participant ID"
// @Param        request  body      meetingDTO.AttendanceRequest  true  "Attendance"
// @Success      200      {object}  meetingDTO.ParticipantResponse
// @Router       /participants/{id}/attendance [patch]
func (h *Meeting) UpdateAttendance(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AttendanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	participant, err := h.meetingService.UpdateAttendance(c.Request().Context(), p, id, entities.AttendanceStatus(req.Status))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToParticipantResponse(participant, locale(c)))
}

// RemoveParticipant handles DELETE /participants/:id
// @Summary      Remove a participant
// @Tags         Participants
// @Security     BearerAuth
// @Param        id   path  string  true  "Participant ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /participants/{id} [delete]
func (h *Meeting) RemoveParticipant(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.RemoveParticipant(c.Request().Context(), p, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// AddAgendaItem handles POST /meetings/:id/agenda
// @Summary      Add an agenda item at the end
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID"
// @Param        request  body      meetingDTO.AgendaItemRequest  true  "Agenda item"
// @Success      201      {object}  meetingDTO.AgendaItemResponse
// @Router       /meetings/{id}/agenda [post]
func (h *Meeting) AddAgendaItem(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AgendaItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.meetingService.AddAgendaItem(c.Request().Context(), meetingUsecase.AgendaItemInput{
		Principal:       p,
		MeetingID:       id,
		Title:           req.Title,
		Description:     req.Description,
		Presenter:       req.Presenter,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToAgendaItemResponse(item))
}

// ListAgenda handles GET /meetings/:id/agenda
// @Summary      List the agenda in order
// @Tags         Agenda
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {array}   meetingDTO.AgendaItemResponse
// @Router       /meetings/{id}/agenda [get]
func (h *Meeting) ListAgenda(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.meetingService.ListAgenda(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAgendaResponses(items))
}

// ReorderAgenda handles PUT /meetings/:id/agenda/order
// @Summary      Reorder the agenda
// @Description  item_ids must list every item of the meeting exactly once
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Meeting ID"
// @Param        request  body      meetingDTO.ReorderAgendaRequest  true  "New order"
// @Success      200      {array}   meetingDTO.AgendaItemResponse
// @Router       /meetings/{id}/agenda/order [put]
func (h *Meeting) ReorderAgenda(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ReorderAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ids := make([]uuid.UUID, len(req.ItemIDs))
	for i, raw := range req.ItemIDs {
		if ids[i], err = uuid.Parse(raw); err != nil {
			return HandleError(h.logger, c, appErrors.ErrInvalidArgument("invalid item_ids"))
		}
	}

	items, err := h.meetingService.ReorderAgenda(c.Request().Context(), p, id, ids)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAgendaResponses(items))
}

// UpdateAgendaItem handles PATCH /agenda-items/:id
// @Summary      Update an agenda item
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Agenda item ID"
// @Param        request  body      meetingDTO.UpdateAgendaItemRequest  true  "Changes"
// @Success      200      {object}  meetingDTO.AgendaItemResponse
// @Router       /agenda-items/{id} [patch]
func (h *Meeting) UpdateAgendaItem(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateAgendaItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.meetingService.UpdateAgendaItem(c.Request().Context(), meetingUsecase.UpdateAgendaItemInput{
		Principal:       p,
		ItemID:          id,
		Title:           req.Title,
		Description:     req.Description,
		Presenter:       req.Presenter,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAgendaItemResponse(item))
}

// DeleteAgendaItem handles DELETE /agenda-items/:id
// @Summary      Delete an agenda item
// @Tags         Agenda
// @Security     BearerAuth
// @Param        id   path  string  true  "Agenda item ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /agenda-items/{id} [delete]
func (h *Meeting) DeleteAgendaItem(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteAgendaItem(c.Request().Context(), p, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// GetMinutes handles GET /meetings/:id/minutes
// @Summary      Get the minutes
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meetingDTO.MinutesResponse
// @Failure      404  {object}  map[string]interface{}  "Not recorded yet"
// @Router       /meetings/{id}/minutes [get]
func (h *Meeting) GetMinutes(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	minutes, err := h.meetingService.GetMinutes(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(minutes))
}

// UpsertMinutes handles PUT /meetings/:id/minutes
// @Summary      Write the minutes
// @Description  Chairman, secretary, organizer, folder editors and admins
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Meeting ID"
// @Param        request  body      meetingDTO.MinutesRequest  true  "Minutes"
// @Success      200      {object}  meetingDTO.MinutesResponse
// @Router       /meetings/{id}/minutes [put]
func (h *Meeting) UpsertMinutes(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.MinutesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	minutes, err := h.meetingService.UpsertMinutes(c.Request().Context(), meetingUsecase.MinutesInput{
		Principal: p,
		MeetingID: id,
		Content:   req.Content,
		Summary:   req.Summary,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(minutes))
}

// CreateTask handles POST /meetings/:id/tasks
// @Summary      Raise a task in a meeting
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID"
// @Param        request  body      meetingDTO.CreateTaskRequest  true  "Task"
// @Success      201      {object}  meetingDTO.TaskResponse
// @Router       /meetings/{id}/tasks [post]
func (h *Meeting) CreateTask(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.CreateTaskInput{
		Principal:   p,
		MeetingID:   id,
		Title:       req.Title,
		Description: req.Description,
		TaskType:    entities.TaskType(req.TaskType),
		LinkGeneral: req.LinkGeneral,
	}
	if input.DueDate, err = parseDate(req.DueDate, "due_date"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if input.AssignedTo, err = parseOptionalUUID(req.AssignedTo, "assigned_to"); err != nil {
		return HandleError(h.logger, c, err)
	}

	task, err := h.meetingService.CreateTask(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingTaskResponse(task, locale(c), h.now()))
}

// ListTasks handles GET /meetings/:id/tasks
// @Summary      List the tasks of a meeting
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {array}   meetingDTO.TaskResponse
// @Router       /meetings/{id}/tasks [get]
func (h *Meeting) ListTasks(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tasks, err := h.meetingService.ListTasks(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTaskResponses(tasks, locale(c), h.now()))
}

// UpdateTask handles PATCH /meeting-tasks/:id
// @Summary      Update a meeting task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Task ID"
// @Param        request  body      meetingDTO.UpdateTaskRequest  true  "Changes"
// @Success      200      {object}  meetingDTO.TaskResponse
// @Router       /meeting-tasks/{id} [patch]
func (h *Meeting) UpdateTask(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateTaskInput{
		Principal:   p,
		TaskID:      id,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.TaskType != nil {
		taskType := entities.TaskType(*req.TaskType)
		input.TaskType = &taskType
	}
	if req.Status != nil {
		status := entities.TaskStatus(*req.Status)
		input.Status = &status
	}
	if input.DueDate, err = parseDate(req.DueDate, "due_date"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if input.AssignedTo, err = parseOptionalUUID(req.AssignedTo, "assigned_to"); err != nil {
		return HandleError(h.logger, c, err)
	}

	task, err := h.meetingService.UpdateTask(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTaskResponse(task, locale(c), h.now()))
}

// UpdateTaskStatus handles PATCH /meeting-tasks/:id/status
// @Summary      Change a task status
// @Description  The linked general task follows
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Task ID"
// @Param        request  body      meetingDTO.TaskStatusRequest  true  "Status"
// @Success      200      {object}  meetingDTO.TaskResponse
// @Router       /meeting-tasks/{id}/status [patch]
func (h *Meeting) UpdateTaskStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.TaskStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	task, err := h.meetingService.UpdateTaskStatus(c.Request().Context(), p, id, entities.TaskStatus(req.Status))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTaskResponse(task, locale(c), h.now()))
}

// DeleteTask handles DELETE /meeting-tasks/:id
// @Summary      Delete a meeting task
// @Description  A linked general task is kept
// @Tags         Tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /meeting-tasks/{id} [delete]
func (h *Meeting) DeleteTask(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteTask(c.Request().Context(), p, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// ListGeneralTasks handles GET /tasks
// @Summary      List organisation-wide tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        assigned_to  query     string  false  "Assignee"
// @Param        mine         query     bool    false  "Only tasks assigned to the caller"
// @Param        status       query     string  false  "Status"
// @Param        meeting_id   query     string  false  "Source meeting"
// @Param        page         query     int     false  "Page"
// @Param        page_size    query     int     false  "Page size"
// @Success      200          {object}  meetingDTO.TaskListResponse
// @Router       /tasks [get]
func (h *Meeting) ListGeneralTasks(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ListTasksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	page, pageSize := paging(c)

	filters := repositories.TaskFilters{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if filters.AssignedTo, err = parseOptionalUUID(req.AssignedTo, "assigned_to"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Mine {
		filters.AssignedTo = &p.UserID
	}
	if filters.MeetingID, err = parseOptionalUUID(req.MeetingID, "meeting_id"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Status != nil {
		status := entities.TaskStatus(*req.Status)
		filters.Status = &status
	}

	tasks, total, err := h.meetingService.ListGeneralTasks(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskListResponse(tasks, total, page, pageSize, locale(c), h.now()))
}

// GetDashboard handles GET /dashboard
// @Summary      Meeting dashboard
// @Description  Counts, upcoming meetings, overdue tasks and attendance over the meetings the caller can see
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        folder_id  query     string  false  "Folder"
// @Param        from       query     string  false  "From date (YYYY-MM-DD)"
// @Param        to         query     string  false  "To date (YYYY-MM-DD)"
// @Success      200        {object}  meetingDTO.DashboardResponse
// @Router       /dashboard [get]
func (h *Meeting) GetDashboard(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.DashboardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var input meetingUsecase.DashboardInput
	if input.FolderID, err = parseOptionalUUID(req.FolderID, "folder_id"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if input.From, err = parseDate(req.From, "from"); err != nil {
		return HandleError(h.logger, c, err)
	}
	if input.To, err = parseDate(req.To, "to"); err != nil {
		return HandleError(h.logger, c, err)
	}

	dashboard, err := h.meetingService.GetDashboard(c.Request().Context(), p, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDashboardResponse(dashboard, locale(c)))
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, appErrors.ErrInvalidArgument("invalid " + field)
	}
	return &id, nil
}
