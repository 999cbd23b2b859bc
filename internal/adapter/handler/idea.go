package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/idea-hub/errors"
	ideaDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/idea"
	"github.com/johnquangdev/idea-hub/internal/adapter/presenter"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/usecase/export"
	ideaUsecase "github.com/johnquangdev/idea-hub/internal/usecase/idea"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

// Idea handles idea, discussion, comment, vote, decision and export requests
type Idea struct {
	ideaService   ideaUsecase.Service
	exportService export.Service
	logger        *zap.Logger
	now           func() time.Time
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideaService ideaUsecase.Service, exportService export.Service, logger *zap.Logger) *Idea {
	return &Idea{
		ideaService:   ideaService,
		exportService: exportService,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateIdea handles POST /ideas
// @Summary      Create an idea
// @Description  Creates a draft, or submits it right away when submit is true
// @Tags         Ideas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ideaDTO.CreateIdeaRequest  true  "Idea"
// @Success      201      {object}  ideaDTO.IdeaResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or discussion period"
// @Failure      401      {object}  map[string]interface{}  "User not authenticated"
// @Router       /ideas [post]
func (h *Idea) CreateIdea(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.CreateIdeaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	execDate, err := parseDate(req.ProposedExecutionDate, "proposed_execution_date")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	idea, err := h.ideaService.CreateIdea(c.Request().Context(), ideaUsecase.CreateIdeaInput{
		Principal:             p,
		Title:                 req.Title,
		Description:           req.Description,
		Category:              req.Category,
		DiscussionPeriod:      req.DiscussionPeriod,
		ProposedExecutionDate: execDate,
		Submit:                req.Submit,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToIdeaResponse(idea, locale(c), h.now()))
}

// ListIdeas handles GET /ideas
// @Summary      List ideas
// @Tags         Ideas
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Status"
// @Param        category    query     string  false  "Category"
// @Param        created_by  query     string  false  "Author id"
// @Param        search      query     string  false  "Search in title and description"
// @Param        page        query     int     false  "Page"
// @Param        page_size   query     int     false  "Page size"
// @Param        sort_by     query     string  false  "created_at, updated_at, title or status"
// @Param        sort_order  query     string  false  "asc or desc"
// @Param        locale      query     string  false  "ar or en"
// @Success      200         {object}  ideaDTO.IdeaListResponse
// @Router       /ideas [get]
func (h *Idea) ListIdeas(c echo.Context) error {
	var req ideaDTO.ListIdeasRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	page, pageSize := paging(c)

	filters := repositories.IdeaFilters{
		Category:  req.Category,
		Search:    req.Search,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Status != nil {
		status := entities.IdeaStatus(*req.Status)
		filters.Status = &status
	}
	if req.CreatedBy != nil {
		id, err := uuid.Parse(*req.CreatedBy)
		if err != nil {
			return HandleError(h.logger, c, appErrors.ErrInvalidArgument("invalid created_by"))
		}
		filters.CreatedBy = &id
	}

	ideas, total, err := h.ideaService.ListIdeas(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToIdeaListResponse(ideas, total, page, pageSize, locale(c), h.now()))
}

// SearchIdeas handles GET /ideas/search
// @Summary      Full-text search over ideas
// @Tags         Ideas
// @Produce      json
// @Security     BearerAuth
// @Param        q          query     string  true   "Query"
// @Param        status     query     string  false  "Status"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  ideaDTO.IdeaListResponse
// @Router       /ideas/search [get]
func (h *Idea) SearchIdeas(c echo.Context) error {
	var req ideaDTO.SearchIdeasRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	page, pageSize := paging(c)

	input := ideaUsecase.SearchIdeasInput{
		Query:  req.Query,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if req.Status != nil {
		status := entities.IdeaStatus(*req.Status)
		input.Status = &status
	}

	ideas, total, err := h.ideaService.SearchIdeas(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToIdeaListResponse(ideas, total, page, pageSize, locale(c), h.now()))
}

// GetIdea handles GET /ideas/:id
// @Summary      Get an idea
// @Tags         Ideas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.IdeaResponse
// @Failure      404  {object}  map[string]interface{}  "Idea not found"
// @Router       /ideas/{id} [get]
func (h *Idea) GetIdea(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	idea, err := h.ideaService.GetIdea(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToIdeaResponse(idea, locale(c), h.now()))
}

// UpdateIdea handles PATCH /ideas/:id
// @Summary      Update an idea
// @Description  Only drafts and ideas sent back for modification can be edited. Send the version you read.
// @Tags         Ideas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Idea ID"
// @Param        request  body      ideaDTO.UpdateIdeaRequest  true  "Changes"
// @Success      200      {object}  ideaDTO.IdeaResponse
// @Failure      409      {object}  map[string]interface{}  "Version conflict"
// @Router       /ideas/{id} [patch]
func (h *Idea) UpdateIdea(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.UpdateIdeaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	execDate, err := parseDate(req.ProposedExecutionDate, "proposed_execution_date")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	idea, err := h.ideaService.UpdateIdea(c.Request().Context(), ideaUsecase.UpdateIdeaInput{
		Principal:             p,
		IdeaID:                id,
		Version:               req.Version,
		Title:                 req.Title,
		Description:           req.Description,
		Category:              req.Category,
		DiscussionPeriod:      req.DiscussionPeriod,
		ProposedExecutionDate: execDate,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToIdeaResponse(idea, locale(c), h.now()))
}

// DeleteIdea handles DELETE /ideas/:id
// @Summary      Delete an idea
// @Description  Authors may delete their drafts, admins any idea
// @Tags         Ideas
// @Security     BearerAuth
// @Param        id   path  string  true  "Idea ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /ideas/{id} [delete]
func (h *Idea) DeleteIdea(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.ideaService.DeleteIdea(c.Request().Context(), p, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// SubmitIdea handles POST /ideas/:id/submit
// @Summary      Submit an idea for discussion
// @Tags         Ideas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.IdeaResponse
// @Router       /ideas/{id}/submit [post]
func (h *Idea) SubmitIdea(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	idea, err := h.ideaService.SubmitIdea(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToIdeaResponse(idea, locale(c), h.now()))
}

// GetCountdown handles GET /ideas/:id/countdown
// @Summary      Discussion countdown
// @Tags         Discussion
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.CountdownResponse
// @Router       /ideas/{id}/countdown [get]
func (h *Idea) GetCountdown(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	countdown, err := h.ideaService.GetCountdown(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCountdownResponse(countdown, locale(c)))
}

// AdjustDiscussion handles POST /ideas/:id/discussion/adjust
// @Summary      Extend or shorten a discussion
// @Description  Adding time to an ended discussion reopens it from now
// @Tags         Discussion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Idea ID"
// @Param        request  body      ideaDTO.AdjustDiscussionRequest  true  "Adjustment"
// @Success      200      {object}  ideaDTO.CountdownResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid amount or reduction exceeds remaining time"
// @Failure      403      {object}  map[string]interface{}  "Admins only"
// @Router       /ideas/{id}/discussion/adjust [post]
func (h *Idea) AdjustDiscussion(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.AdjustDiscussionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	countdown, err := h.ideaService.AdjustDiscussion(c.Request().Context(), ideaUsecase.AdjustDiscussionInput{
		Principal: p,
		IdeaID:    id,
		Version:   req.Version,
		Days:      req.Days,
		Hours:     req.Hours,
		Operation: discussion.Operation(req.Operation),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCountdownResponse(countdown, locale(c)))
}

// EndDiscussion handles POST /ideas/:id/discussion/end
// @Summary      End a discussion now
// @Tags         Discussion
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.CountdownResponse
// @Router       /ideas/{id}/discussion/end [post]
func (h *Idea) EndDiscussion(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	countdown, err := h.ideaService.EndDiscussion(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToCountdownResponse(countdown, locale(c)))
}

// ListComments handles GET /ideas/:id/comments
// @Summary      List comments
// @Description  Flat in creation order, or nested when tree=true
// @Tags         Comments
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Idea ID"
// @Param        tree  query     bool    false  "Nest replies"
// @Success      200   {array}   ideaDTO.CommentResponse
// @Router       /ideas/{id}/comments [get]
func (h *Idea) ListComments(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	comments, err := h.ideaService.ListComments(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if c.QueryParam("tree") == "true" {
		return HandleSuccess(h.logger, c, presenter.ToCommentTree(comments))
	}
	return HandleSuccess(h.logger, c, presenter.ToCommentResponses(comments))
}

// AddComment handles POST /ideas/:id/comments
// @Summary      Comment on an idea
// @Description  JSON, or multipart form with an optional "attachment" file
// @Tags         Comments
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "Idea ID"
// @Param        content     formData  string  true   "Comment text"
// @Param        parent_id   formData  string  false  "Parent comment id"
// @Param        attachment  formData  file    false  "Attachment"
// @Success      201         {object}  ideaDTO.CommentResponse
// @Failure      403         {object}  map[string]interface{}  "Discussion closed"
// @Failure      413         {object}  map[string]interface{}  "Attachment too large"
// @Router       /ideas/{id}/comments [post]
func (h *Idea) AddComment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.AddCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := ideaUsecase.AddCommentInput{
		Principal: p,
		IdeaID:    id,
		Content:   req.Content,
	}
	if req.ParentID != nil {
		parent, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return HandleError(h.logger, c, appErrors.ErrInvalidArgument("invalid parent_id"))
		}
		input.ParentID = &parent
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("attachment")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return HandleError(h.logger, c, appErrors.ErrInvalidPayload(err))
		default:
			file, err := fh.Open()
			if err != nil {
				return HandleError(h.logger, c, appErrors.ErrInvalidPayload(err))
			}
			defer file.Close()

			input.Attachment = &ideaUsecase.AttachmentInput{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Reader:      file,
			}
		}
	}

	comment, err := h.ideaService.AddComment(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToCommentResponse(comment))
}

// DeleteComment handles DELETE /comments/:id
// @Summary      Delete a comment and its replies
// @Tags         Comments
// @Security     BearerAuth
// @Param        id   path  string  true  "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /comments/{id} [delete]
func (h *Idea) DeleteComment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.ideaService.DeleteComment(c.Request().Context(), p, id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// CastVote handles PUT /ideas/:id/vote
// @Summary      Cast or change the caller's vote
// @Tags         Votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Idea ID"
// @Param        request  body      ideaDTO.VoteRequest  true  "Vote"
// @Success      200      {object}  ideaDTO.VoteSummaryResponse
// @Router       /ideas/{id}/vote [put]
func (h *Idea) CastVote(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.VoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.ideaService.CastVote(c.Request().Context(), p, id, entities.VoteValue(req.Value))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToVoteSummaryResponse(result))
}

// RetractVote handles DELETE /ideas/:id/vote
// @Summary      Withdraw the caller's vote
// @Tags         Votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.VoteSummaryResponse
// @Router       /ideas/{id}/vote [delete]
func (h *Idea) RetractVote(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.ideaService.RetractVote(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToVoteSummaryResponse(result))
}

// VoteSummary handles GET /ideas/:id/votes/summary
// @Summary      Vote tally
// @Tags         Votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.VoteSummaryResponse
// @Router       /ideas/{id}/votes/summary [get]
func (h *Idea) VoteSummary(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.ideaService.VoteSummary(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToVoteSummaryResponse(result))
}

// ListVotes handles GET /ideas/:id/votes
// @Summary      List votes
// @Tags         Votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {array}   ideaDTO.VoteResponse
// @Router       /ideas/{id}/votes [get]
func (h *Idea) ListVotes(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	votes, err := h.ideaService.ListVotes(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToVoteResponses(votes, locale(c)))
}

// RecordDecision handles POST /ideas/:id/decision
// @Summary      Record the decision on an idea
// @Tags         Decisions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Idea ID"
// @Param        request  body      ideaDTO.RecordDecisionRequest  true  "Decision"
// @Success      201      {object}  ideaDTO.DecisionResponse
// @Failure      409      {object}  map[string]interface{}  "Decision already recorded"
// @Router       /ideas/{id}/decision [post]
func (h *Idea) RecordDecision(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.RecordDecisionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	assignees := make([]entities.Assignee, len(req.Assignees))
	for i, a := range req.Assignees {
		assignees[i] = entities.Assignee{ID: a.ID, Name: a.Name, Responsibility: a.Responsibility}
	}

	decision, err := h.ideaService.RecordDecision(c.Request().Context(), ideaUsecase.RecordDecisionInput{
		Principal: p,
		IdeaID:    id,
		Version:   req.Version,
		Status:    entities.IdeaStatus(req.Status),
		Reason:    req.Reason,
		Assignees: assignees,
		Timeline:  req.Timeline,
		Budget:    req.Budget,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToDecisionResponse(decision, locale(c)))
}

// GetDecision handles GET /ideas/:id/decision
// @Summary      Get the decision on an idea
// @Tags         Decisions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.DecisionResponse
// @Failure      404  {object}  map[string]interface{}  "No decision yet"
// @Router       /ideas/{id}/decision [get]
func (h *Idea) GetDecision(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	decision, err := h.ideaService.GetDecision(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDecisionResponse(decision, locale(c)))
}

// DeleteDecision handles DELETE /ideas/:id/decision
// @Summary      Revoke the decision on an idea
// @Description  The idea goes back to review while its discussion runs, otherwise to pending decision
// @Tags         Decisions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Idea ID"
// @Success      200  {object}  ideaDTO.IdeaResponse
// @Router       /ideas/{id}/decision [delete]
func (h *Idea) DeleteDecision(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	idea, err := h.ideaService.DeleteDecision(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToIdeaResponse(idea, locale(c), h.now()))
}

// Export handles GET /ideas/:id/export
// @Summary      Export an idea
// @Description  Sections default to all of them. pdf is served as text with a notice.
// @Tags         Export
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id           path   string  true   "Idea ID"
// @Param        format       query  string  false  "txt, zip or pdf"
// @Param        details      query  bool    false  "Include details"
// @Param        comments     query  bool    false  "Include comments"
// @Param        votes        query  bool    false  "Include votes"
// @Param        decision     query  bool    false  "Include decision"
// @Param        attachments  query  bool    false  "Include attachments (zip only)"
// @Success      200
// @Router       /ideas/{id}/export [get]
func (h *Idea) Export(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req ideaDTO.ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Format == "" {
		req.Format = string(export.FormatTXT)
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	file, err := h.exportService.Export(c.Request().Context(), export.Input{
		IdeaID:   id,
		Format:   format,
		Locale:   locale(c),
		Sections: sectionsFrom(req, format),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("📦 Idea exported",
		zap.String("idea_id", id.String()),
		zap.String("format", string(format)),
		zap.Int("bytes", len(file.Content)),
	)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, file.ContentType, file.Content)
}

// sectionsFrom defaults every toggle to on; attachments only travel in a zip
func sectionsFrom(req ideaDTO.ExportRequest, format export.Format) export.Sections {
	on := func(b *bool) bool { return b == nil || *b }
	return export.Sections{
		Details:     on(req.Details),
		Comments:    on(req.Comments),
		Votes:       on(req.Votes),
		Decision:    on(req.Decision),
		Attachments: format == export.FormatZIP && on(req.Attachments),
	}
}

func parseDate(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, appErrors.ErrInvalidArgument("invalid " + field)
	}
	return &t, nil
}
