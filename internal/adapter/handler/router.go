package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	httpmw "github.com/johnquangdev/idea-hub/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/idea-hub/pkg/config"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Idea     *Idea
	Meeting  *Meeting
	Folder   *Folder
	User     *User
	Meta     *Meta
	Realtime *Realtime
}

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	handlers Handlers
	authMW   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, handlers Handlers, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:      cfg,
		handlers: handlers,
		authMW:   authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.GET("/meta/labels", rt.handlers.Meta.Labels)

	protected := v1.Group("", rt.authMW)
	rt.setupIdeaRoutes(protected)
	rt.setupFolderRoutes(protected)
	rt.setupMeetingRoutes(protected)
	rt.setupTaskRoutes(protected)
	rt.setupUserRoutes(protected)

	if rt.handlers.Realtime != nil {
		protected.GET("/ws", rt.handlers.Realtime.Connect)
	}
}

// setupIdeaRoutes configures ideas, their discussion, comments, votes and decision
func (rt *Router) setupIdeaRoutes(g *echo.Group) {
	h := rt.handlers.Idea
	admin := httpmw.RequireAdmin()

	ideas := g.Group("/ideas")
	ideas.POST("", h.CreateIdea)
	ideas.GET("", h.ListIdeas)
	ideas.GET("/search", h.SearchIdeas)
	ideas.GET("/:id", h.GetIdea)
	ideas.PATCH("/:id", h.UpdateIdea)
	ideas.DELETE("/:id", h.DeleteIdea)

	ideas.POST("/:id/submit", h.SubmitIdea)
	ideas.GET("/:id/countdown", h.GetCountdown)
	ideas.POST("/:id/discussion/adjust", h.AdjustDiscussion, admin)
	ideas.POST("/:id/discussion/end", h.EndDiscussion, admin)

	ideas.GET("/:id/comments", h.ListComments)
	ideas.POST("/:id/comments", h.AddComment)
	g.DELETE("/comments/:id", h.DeleteComment)

	ideas.PUT("/:id/vote", h.CastVote)
	ideas.DELETE("/:id/vote", h.RetractVote)
	ideas.GET("/:id/votes", h.ListVotes)
	ideas.GET("/:id/votes/summary", h.VoteSummary)

	ideas.POST("/:id/decision", h.RecordDecision, admin)
	ideas.GET("/:id/decision", h.GetDecision)
	ideas.DELETE("/:id/decision", h.DeleteDecision, admin)

	ideas.GET("/:id/export", h.Export)
}

// setupFolderRoutes configures folders and sharing
func (rt *Router) setupFolderRoutes(g *echo.Group) {
	h := rt.handlers.Folder

	folders := g.Group("/folders")
	folders.POST("", h.CreateFolder)
	folders.GET("", h.ListFolders)
	folders.GET("/:id", h.GetFolder)
	folders.PATCH("/:id", h.UpdateFolder)
	folders.DELETE("/:id", h.DeleteFolder)
	folders.POST("/:id/members", h.AddMember)
	folders.PATCH("/:id/members/:userId", h.UpdateMemberRole)
	folders.DELETE("/:id/members/:userId", h.RemoveMember)
}

// setupMeetingRoutes configures meetings and what hangs off them.
// Collections are nested under the meeting, single items have their own path.
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	h := rt.handlers.Meeting

	meetings := g.Group("/meetings")
	meetings.POST("", h.CreateMeeting)
	meetings.GET("", h.ListMeetings)
	meetings.GET("/:id", h.GetMeeting)
	meetings.PATCH("/:id", h.UpdateMeeting)
	meetings.DELETE("/:id", h.DeleteMeeting)
	meetings.PATCH("/:id/status", h.UpdateMeetingStatus)

	meetings.POST("/:id/participants", h.AddParticipant)
	meetings.GET("/:id/participants", h.ListParticipants)
	g.PATCH("/participants/:id/role", h.UpdateParticipantRole)
	g.PATCH("/participants/:id/attendance", h.UpdateAttendance)
	g.DELETE("/participants/:id", h.RemoveParticipant)

	meetings.POST("/:id/agenda", h.AddAgendaItem)
	meetings.GET("/:id/agenda", h.ListAgenda)
	meetings.PUT("/:id/agenda/order", h.ReorderAgenda)
	g.PATCH("/agenda-items/:id", h.UpdateAgendaItem)
	g.DELETE("/agenda-items/:id", h.DeleteAgendaItem)

	meetings.GET("/:id/minutes", h.GetMinutes)
	meetings.PUT("/:id/minutes", h.UpsertMinutes)

	meetings.POST("/:id/tasks", h.CreateTask)
	meetings.GET("/:id/tasks", h.ListTasks)
	g.PATCH("/meeting-tasks/:id", h.UpdateTask)
	g.PATCH("/meeting-tasks/:id/status", h.UpdateTaskStatus)
	g.DELETE("/meeting-tasks/:id", h.DeleteTask)
}

// setupTaskRoutes configures the organisation-wide task list and dashboard
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	g.GET("/tasks", rt.handlers.Meeting.ListGeneralTasks)
	g.GET("/dashboard", rt.handlers.Meeting.GetDashboard)
}

// setupUserRoutes configures profile routes
func (rt *Router) setupUserRoutes(g *echo.Group) {
	users := g.Group("/users")
	users.GET("/me", rt.handlers.User.Me)
	users.GET("/search", rt.handlers.User.SearchUsers)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
