package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/realtime"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
)

// MeetingViewer answers whether a caller may see a meeting
type MeetingViewer interface {
	CanView(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (bool, error)
}

// Realtime upgrades authenticated requests to websocket connections
type Realtime struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(hub *realtime.Hub, logger *zap.Logger) *Realtime {
	return &Realtime{hub: hub, logger: logger}
}

// Connect handles GET /ws
// @Summary      Realtime updates
// @Description  Upgrades to a websocket. Send {"type":"subscribe","topic":"idea:<id>"} to follow an idea or meeting.
// @Description  Browsers pass the token with ?access_token=
// @Tags         Realtime
// @Security     BearerAuth
// @Param        access_token  query  string  false  "Bearer token"
// @Success      101
// @Router       /ws [get]
func (h *Realtime) Connect(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	sub := realtime.Subscriber{UserID: p.UserID, IsAdmin: p.IsAdmin()}
	if err := h.hub.ServeWS(c.Response(), c.Request(), sub); err != nil {
		// the upgrader has already answered the request
		h.logger.Warn("⚠️ Websocket upgrade failed",
			zap.String("user_id", p.UserID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// TopicAuthorizer decides who may follow which topic. Wildcards are for admins,
// ideas are open to every signed-in user, meetings follow meeting access.
func TopicAuthorizer(meetings MeetingViewer, logger *zap.Logger) realtime.AuthorizeFunc {
	return func(ctx context.Context, sub realtime.Subscriber, topic string) bool {
		kind, id, ok := events.ParseTopic(topic)
		if !ok {
			return false
		}
		if id == uuid.Nil {
			return sub.IsAdmin
		}
		if kind == "idea" {
			return true
		}

		p := auth.Principal{UserID: sub.UserID, Role: entities.RoleMember}
		if sub.IsAdmin {
			p.Role = entities.RoleAdmin
		}
		allowed, err := meetings.CanView(ctx, p, id)
		if err != nil {
			logger.Warn("⚠️ Failed to check meeting access for subscription",
				zap.String("topic", topic),
				zap.String("user_id", sub.UserID.String()),
				zap.Error(err),
			)
			return false
		}
		return allowed
	}
}
