package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	"github.com/johnquangdev/idea-hub/internal/usecase/export"
	ideaUsecase "github.com/johnquangdev/idea-hub/internal/usecase/idea"
	meetingUsecase "github.com/johnquangdev/idea-hub/internal/usecase/meeting"
	pkgvalidator "github.com/johnquangdev/idea-hub/pkg/validator"
)

var (
	member = auth.Principal{UserID: uuid.New(), Email: "alice@test.local", FullName: "Alice", Role: entities.RoleMember}
	admin  = auth.Principal{UserID: uuid.New(), Email: "admin@test.local", FullName: "Admin", Role: entities.RoleAdmin}

	fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

// call describes a request run straight against a handler method
type call struct {
	method    string
	target    string
	body      string
	path      string
	params    map[string]string
	principal *auth.Principal
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func serve(t *testing.T, h echo.HandlerFunc, cl call) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = pkgvalidator.New()

	var body io.Reader
	if cl.body != "" {
		body = strings.NewReader(cl.body)
	}
	req := httptest.NewRequest(cl.method, cl.target, body)
	if cl.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	if cl.path != "" {
		c.SetPath(cl.path)
	}
	names := make([]string, 0, len(cl.params))
	values := make([]string, 0, len(cl.params))
	for k, v := range cl.params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if cl.principal != nil {
		c.Set(middleware.PrincipalKey, *cl.principal)
	}

	require.NoError(t, h(c))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	env := decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, dst), string(env.Data))
}

func as(p auth.Principal) *auth.Principal { return &p }

// mockIdeaService implements ideaUsecase.Service; unexpected calls panic through the nil embed
type mockIdeaService struct {
	ideaUsecase.Service
	mock.Mock
}

func (m *mockIdeaService) CreateIdea(ctx context.Context, input ideaUsecase.CreateIdeaInput) (*entities.Idea, error) {
	args := m.Called(ctx, input)
	idea, _ := args.Get(0).(*entities.Idea)
	return idea, args.Error(1)
}

func (m *mockIdeaService) GetIdea(ctx context.Context, id uuid.UUID) (*entities.Idea, error) {
	args := m.Called(ctx, id)
	idea, _ := args.Get(0).(*entities.Idea)
	return idea, args.Error(1)
}

func (m *mockIdeaService) ListIdeas(ctx context.Context, filters repositories.IdeaFilters) ([]*entities.Idea, int64, error) {
	args := m.Called(ctx, filters)
	ideas, _ := args.Get(0).([]*entities.Idea)
	return ideas, args.Get(1).(int64), args.Error(2)
}

func (m *mockIdeaService) AdjustDiscussion(ctx context.Context, input ideaUsecase.AdjustDiscussionInput) (*ideaUsecase.Countdown, error) {
	args := m.Called(ctx, input)
	cd, _ := args.Get(0).(*ideaUsecase.Countdown)
	return cd, args.Error(1)
}

func (m *mockIdeaService) CastVote(ctx context.Context, p auth.Principal, id uuid.UUID, value entities.VoteValue) (*ideaUsecase.VoteResult, error) {
	args := m.Called(ctx, p, id, value)
	res, _ := args.Get(0).(*ideaUsecase.VoteResult)
	return res, args.Error(1)
}

type mockExportService struct {
	mock.Mock
}

func (m *mockExportService) Export(ctx context.Context, input export.Input) (*export.File, error) {
	args := m.Called(ctx, input)
	f, _ := args.Get(0).(*export.File)
	return f, args.Error(1)
}

type mockMeetingService struct {
	meetingUsecase.Service
	mock.Mock
}

func (m *mockMeetingService) CreateMeeting(ctx context.Context, input meetingUsecase.CreateMeetingInput) (*entities.Meeting, error) {
	args := m.Called(ctx, input)
	meeting, _ := args.Get(0).(*entities.Meeting)
	return meeting, args.Error(1)
}

func (m *mockMeetingService) ReorderAgenda(ctx context.Context, p auth.Principal, meetingID uuid.UUID, ids []uuid.UUID) ([]*entities.MeetingAgendaItem, error) {
	args := m.Called(ctx, p, meetingID, ids)
	items, _ := args.Get(0).([]*entities.MeetingAgendaItem)
	return items, args.Error(1)
}

func (m *mockMeetingService) ListGeneralTasks(ctx context.Context, filters repositories.TaskFilters) ([]*entities.Task, int64, error) {
	args := m.Called(ctx, filters)
	tasks, _ := args.Get(0).([]*entities.Task)
	return tasks, args.Get(1).(int64), args.Error(2)
}

func (m *mockMeetingService) DeleteFolder(ctx context.Context, p auth.Principal, folderID uuid.UUID, force bool) error {
	return m.Called(ctx, p, folderID, force).Error(0)
}

func (m *mockMeetingService) CanView(ctx context.Context, p auth.Principal, meetingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, p, meetingID)
	return args.Bool(0), args.Error(1)
}

func newIdeaHandler(svc *mockIdeaService, exp *mockExportService) *Idea {
	h := NewIdeaHandler(svc, exp, zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return h
}

func newMeetingHandler(svc *mockMeetingService) *Meeting {
	h := NewMeetingHandler(svc, zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return h
}

var anyCtx = mock.Anything

func TestHandleError_Unmapped(t *testing.T) {
	rec := serve(t, func(c echo.Context) error {
		return HandleError(zap.NewNop(), c, io.ErrUnexpectedEOF)
	}, call{method: http.MethodGet, target: "/"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	require.Equal(t, "Internal server error", env.Message)
	require.Empty(t, env.Info)
}
