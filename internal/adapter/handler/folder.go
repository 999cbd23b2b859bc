package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/idea-hub/errors"
	meetingDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/meeting"
	"github.com/johnquangdev/idea-hub/internal/adapter/presenter"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/idea-hub/internal/usecase/meeting"
)

// Folder handles meeting folder and sharing requests
type Folder struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Folder {
	return &Folder{
		meetingService: meetingService,
		logger:         logger,
	}
}

// CreateFolder handles POST /folders
// @Summary      Create a folder
// @Tags         Folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingDTO.CreateFolderRequest  true  "Folder"
// @Success      201      {object}  meetingDTO.FolderResponse
// @Router       /folders [post]
func (h *Folder) CreateFolder(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	folder, err := h.meetingService.CreateFolder(c.Request().Context(), meetingUsecase.CreateFolderInput{
		Principal:   p,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToFolderResponse(folder, p, locale(c)))
}

// ListFolders handles GET /folders
// @Summary      List folders the caller owns or is shared
// @Tags         Folders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  meetingDTO.FolderResponse
// @Router       /folders [get]
func (h *Folder) ListFolders(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	folders, err := h.meetingService.ListFolders(c.Request().Context(), p)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFolderResponses(folders, p, locale(c)))
}

// GetFolder handles GET /folders/:id
// @Summary      Get a folder with its members
// @Tags         Folders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Folder ID"
// @Success      200  {object}  meetingDTO.FolderResponse
// @Failure      403  {object}  map[string]interface{}  "Access denied"
// @Router       /folders/{id} [get]
func (h *Folder) GetFolder(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	folder, err := h.meetingService.GetFolder(c.Request().Context(), p, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFolderResponse(folder, p, locale(c)))
}

// UpdateFolder handles PATCH /folders/:id
// @Summary      Rename or recolor a folder
// @Tags         Folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Folder ID"
// @Param        request  body      meetingDTO.UpdateFolderRequest  true  "Changes"
// @Success      200      {object}  meetingDTO.FolderResponse
// @Router       /folders/{id} [patch]
func (h *Folder) UpdateFolder(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	folder, err := h.meetingService.UpdateFolder(c.Request().Context(), meetingUsecase.UpdateFolderInput{
		Principal:   p,
		FolderID:    id,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFolderResponse(folder, p, locale(c)))
}

// DeleteFolder handles DELETE /folders/:id
// @Summary      Delete a folder
// @Description  Refused while meetings are filed in it unless force=true, which moves them out
// @Tags         Folders
// @Security     BearerAuth
// @Param        id     path   string  true   "Folder ID"
// @Param        force  query  bool    false  "Keep the meetings outside any folder"
// @Success      200    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}  "Folder not empty"
// @Router       /folders/{id} [delete]
func (h *Folder) DeleteFolder(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	force := c.QueryParam("force") == "true"

	if err := h.meetingService.DeleteFolder(c.Request().Context(), p, id, force); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// AddMember handles POST /folders/:id/members
// @Summary      Share a folder
// @Tags         Folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Folder ID"
// @Param        request  body      meetingDTO.FolderMemberRequest  true  "Member"
// @Success      201      {object}  meetingDTO.FolderMemberResponse
// @Failure      409      {object}  map[string]interface{}  "Already shared"
// @Router       /folders/{id}/members [post]
func (h *Folder) AddMember(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.FolderMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return HandleError(h.logger, c, appErrors.ErrInvalidArgument("invalid user_id"))
	}

	member, err := h.meetingService.AddFolderMember(c.Request().Context(), meetingUsecase.FolderMemberInput{
		Principal: p,
		FolderID:  id,
		UserID:    userID,
		Role:      entities.FolderRole(req.Role),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToFolderMemberResponse(member, locale(c)))
}

// UpdateMemberRole handles PATCH /folders/:id/members/:userId
// @Summary      Change a member's role
// @Tags         Folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Folder ID"
// @Param        userId   path      string                              true  "User ID"
// @Param        request  body      meetingDTO.FolderMemberRoleRequest  true  "Role"
// @Success      200      {object}  meetingDTO.FolderMemberResponse
// @Router       /folders/{id}/members/{userId} [patch]
func (h *Folder) UpdateMemberRole(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.FolderMemberRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	member, err := h.meetingService.UpdateFolderMemberRole(c.Request().Context(), meetingUsecase.FolderMemberInput{
		Principal: p,
		FolderID:  id,
		UserID:    userID,
		Role:      entities.FolderRole(req.Role),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFolderMemberResponse(member, locale(c)))
}

// RemoveMember handles DELETE /folders/:id/members/:userId
// @Summary      Stop sharing a folder with a user
// @Tags         Folders
// @Security     BearerAuth
// @Param        id      path  string  true  "Folder ID"
// @Param        userId  path  string  true  "User ID"
// @Success      200     {object}  map[string]interface{}
// @Router       /folders/{id}/members/{userId} [delete]
func (h *Folder) RemoveMember(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.RemoveFolderMember(c.Request().Context(), p, id, userID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"folder_id": id.String(), "user_id": userID.String()})
}
