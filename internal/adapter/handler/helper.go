package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/errors"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
	pkgvalidator "github.com/johnquangdev/idea-hub/pkg/validator"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID reads X-Request-ID from the request, then from the response set by the RequestID middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated is HandleSuccess with 201
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	appErr, ok := toAppError(c, err)
	if !ok {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		body := errs{
			Code:    errors.ErrorCode_INTERNAL,
			Message: "Internal server error",
		}
		return c.JSON(http.StatusInternalServerError, body)
	}

	if logger != nil {
		log := logger.Warn
		if appErr.HTTPCode >= http.StatusInternalServerError {
			log = logger.Error
		}
		log("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil && appErr.HTTPCode < http.StatusInternalServerError {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps use case errors to their client-facing shape.
// The :id route param, when present, goes into the details.
func toAppError(c echo.Context, err error) (errors.AppError, bool) {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		msg, _ := httpErr.Message.(string)
		switch httpErr.Code {
		case http.StatusUnauthorized:
			return errors.ErrUnauthenticated(), true
		case http.StatusForbidden:
			return errors.ErrForbidden(msg), true
		}
		return errors.AppError{HTTPCode: httpErr.Code, Code: errors.ErrorCode_INVALID_PAYLOAD, Message: msg}, true
	}

	id := c.Param("id")
	is := func(target error) bool { return stdErrors.Is(err, target) }

	switch {
	case is(ucerrors.ErrVersionChanged):
		return errors.ErrVersionConflict("resource"), true
	case is(ucerrors.ErrTokenExpired):
		return errors.ErrTokenExpired(), true
	case is(ucerrors.ErrTokenInvalid), is(ucerrors.ErrUnauthorized):
		return errors.ErrInvalidToken(), true

	// ideas
	case is(ucerrors.ErrIdeaNotFound):
		return errors.ErrIdeaNotFound(id), true
	case is(ucerrors.ErrIdeaNotEditable), is(ucerrors.ErrIdeaInvalidState):
		return errors.ErrIdeaInvalidState(err.Error(), c.Path()), true
	case is(ucerrors.ErrNotIdeaOwner):
		return errors.ErrPermissionDenied("only the author may do this"), true
	case is(ucerrors.ErrInvalidDiscussionPeriod), is(discussion.ErrInvalidPeriod), is(discussion.ErrPeriodTooLong):
		return errors.ErrDiscussionInvalidPeriod(err), true
	case is(ucerrors.ErrInvalidAdjustAmount), is(discussion.ErrInvalidAmount), is(discussion.ErrUnknownOperation):
		return errors.ErrDiscussionInvalidAmount(), true
	case is(ucerrors.ErrReductionExceedsLeft), is(discussion.ErrExceedsRemaining):
		return errors.ErrDiscussionExceedsRemaining(), true
	case is(ucerrors.ErrDiscussionClosed), is(ucerrors.ErrDiscussionNotStarted):
		return errors.ErrDiscussionClosed(id), true
	case is(ucerrors.ErrCommentNotFound):
		return errors.ErrCommentNotFound(id), true
	case is(ucerrors.ErrInvalidCommentParent):
		return errors.ErrCommentInvalidParent(), true
	case is(ucerrors.ErrVoteNotFound):
		return errors.ErrNotFound("Vote"), true
	case is(ucerrors.ErrInvalidVote):
		return errors.ErrInvalidArgument("vote must be agree, disagree or neutral"), true
	case is(ucerrors.ErrAttachmentTooLarge):
		return errors.AppError{HTTPCode: http.StatusRequestEntityTooLarge, Code: errors.ErrorCode_INVALID_ARGUMENT, Message: err.Error()}, true
	case is(ucerrors.ErrDecisionNotFound):
		return errors.ErrDecisionNotFound(id), true
	case is(ucerrors.ErrDecisionAlreadyExists):
		return errors.ErrDecisionAlreadyExists(id), true
	case is(ucerrors.ErrInvalidDecisionStatus):
		return errors.ErrDecisionInvalidStatus(c.QueryParam("status")), true
	case is(ucerrors.ErrInvalidExportFormat):
		return errors.ErrExportInvalidFormat(c.QueryParam("format")), true
	case is(ucerrors.ErrNothingToExport):
		return errors.ErrInvalidArgument(err.Error()), true

	// meetings
	case is(ucerrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id), true
	case is(ucerrors.ErrMeetingAccessDenied):
		return errors.ErrMeetingAccessDenied(id), true
	case is(ucerrors.ErrInvalidMeetingStatus), is(ucerrors.ErrInvalidAgendaOrder):
		return errors.ErrInvalidArgument(err.Error()), true
	case is(ucerrors.ErrParticipantNotFound):
		return errors.ErrParticipantNotFound(id), true
	case is(ucerrors.ErrParticipantAlreadyExists):
		return errors.ErrParticipantAlreadyExists(""), true
	case is(ucerrors.ErrChairmanAlreadyAssigned):
		return errors.ErrChairmanAlreadyAssigned(id), true
	case is(ucerrors.ErrAgendaItemNotFound):
		return errors.ErrAgendaItemNotFound(id), true
	case is(ucerrors.ErrMinutesNotFound):
		return errors.ErrNotFound("Minutes"), true
	case is(ucerrors.ErrTaskNotFound):
		return errors.ErrTaskNotFound(id), true
	case is(ucerrors.ErrFolderNotFound):
		return errors.ErrFolderNotFound(id), true
	case is(ucerrors.ErrFolderNotEmpty):
		return errors.ErrFolderNotEmpty(id), true
	case is(ucerrors.ErrFolderAccessDenied):
		return errors.ErrPermissionDenied("folder access"), true
	case is(ucerrors.ErrFolderMemberNotFound):
		return errors.ErrFolderMemberNotFound(c.Param("userId")), true
	case is(ucerrors.ErrFolderMemberExists):
		return errors.ErrAlreadyExists("Folder member"), true
	case is(ucerrors.ErrCannotShareWithOwner):
		return errors.ErrInvalidArgument(err.Error()), true

	// integrations
	case is(ucerrors.ErrStorageDisabled):
		return errors.AppError{HTTPCode: http.StatusServiceUnavailable, Code: errors.ErrorCode_INTEGRATION_STORAGE_FAILED, Message: err.Error()}, true
	case is(ucerrors.ErrStorageFailed):
		return errors.ErrStorageFailed("attachment", err), true
	case is(ucerrors.ErrSearchUnavailable):
		return errors.ErrSearchFailed(err), true

	// generic
	case is(ucerrors.ErrUserNotFound):
		return errors.ErrNotFound("User"), true
	case is(ucerrors.ErrInvalidInput):
		return errors.AppError{Raw: err, HTTPCode: http.StatusBadRequest, Code: errors.ErrorCode_INVALID_ARGUMENT, Message: "Invalid input"}, true
	case is(ucerrors.ErrForbidden):
		return errors.ErrForbidden(err.Error()), true
	case is(ucerrors.ErrNotFound):
		return errors.ErrNotFound("Resource"), true
	case is(ucerrors.ErrAlreadyExists), is(ucerrors.ErrConflict):
		return errors.ErrAlreadyExists("Resource"), true
	}
	return errors.AppError{}, false
}

// bindAndValidate binds the request into req and runs the struct validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidPayload(err)
		for field, rule := range pkgvalidator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return appErr
	}
	return nil
}

// principal returns the caller set by the auth middleware
func principal(c echo.Context) (auth.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return auth.Principal{}, errors.ErrUnauthenticated()
	}
	return p, nil
}

// uuidParam parses a path parameter as a UUID
func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid " + name)
	}
	return id, nil
}

// optionalUUID parses an optional query parameter
func optionalUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.ErrInvalidArgument("invalid " + name)
	}
	return &id, nil
}

// locale reads ?locale= and falls back to Accept-Language
func locale(c echo.Context) entities.Locale {
	if l := c.QueryParam("locale"); l != "" {
		return entities.ParseLocale(l)
	}
	return entities.ParseLocale(c.Request().Header.Get("Accept-Language"))
}

// paging reads page and page_size query params, clamped to defaults and the maximum page size
func paging(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
