package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	userDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/user"
	"github.com/johnquangdev/idea-hub/internal/adapter/presenter"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
)

// UserService is the part of the auth service the user endpoints need
type UserService interface {
	Me(ctx context.Context, p auth.Principal) (*entities.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*entities.User, error)
}

// User handles profile requests
type User struct {
	userService UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

// Me handles GET /users/me
// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userDTO.UserResponse
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Router       /users/me [get]
func (h *User) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	user, err := h.userService.Me(c.Request().Context(), p)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}

// SearchUsers handles GET /users/search
// @Summary      Find users by name or email
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  false  "Name or email fragment"
// @Param        limit  query     int     false  "Max results (default 20, max 50)"
// @Success      200    {array}   userDTO.UserSummary
// @Router       /users/search [get]
func (h *User) SearchUsers(c echo.Context) error {
	if _, err := principal(c); err != nil {
		return HandleError(h.logger, c, err)
	}

	var req userDTO.SearchUsersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	users, err := h.userService.SearchUsers(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]*userDTO.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, presenter.ToUserSummary(u))
	}
	return HandleSuccess(h.logger, c, out)
}
