package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the raw cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// ErrVersionConflict means the row changed since the client last read it
func ErrVersionConflict(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_VERSION_CONFLICT,
		Message:  fmt.Sprintf("%s was modified by someone else, reload and retry", resource),
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

// Idea Errors
func ErrIdeaNotFound(ideaID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_IDEA_NOT_FOUND,
		Message:  "Idea not found",
	}.WithDetail("idea_id", ideaID)
}

func ErrIdeaInvalidState(currentState, operation string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_IDEA_INVALID_STATE,
		Message:  "Idea is in invalid state for this operation",
	}.WithDetail("current_state", currentState).
		WithDetail("operation", operation)
}

// Discussion Errors
func ErrDiscussionInvalidPeriod(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_DISCUSSION_INVALID_PERIOD,
		Message:  "Discussion period must look like \"2 days\", \"5 hours\", \"1 days 3 hours\" or a number of hours",
	}
}

func ErrDiscussionInvalidAmount() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_DISCUSSION_INVALID_AMOUNT,
		Message:  "Days and hours must be non-negative and not both zero",
	}
}

func ErrDiscussionExceedsRemaining() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_DISCUSSION_EXCEEDS_LEFT,
		Message:  "Reduction is larger than the remaining discussion time",
	}
}

func ErrDiscussionClosed(ideaID string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_DISCUSSION_CLOSED,
		Message:  "Discussion period has ended",
	}.WithDetail("idea_id", ideaID)
}

// Comment Errors
func ErrCommentNotFound(commentID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_COMMENT_NOT_FOUND,
		Message:  "Comment not found",
	}.WithDetail("comment_id", commentID)
}

func ErrCommentInvalidParent() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_COMMENT_INVALID_PARENT,
		Message:  "Reply target does not belong to this idea",
	}
}

// Decision Errors
func ErrDecisionNotFound(ideaID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_DECISION_NOT_FOUND,
		Message:  "Decision not found",
	}.WithDetail("idea_id", ideaID)
}

func ErrDecisionAlreadyExists(ideaID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_DECISION_ALREADY_EXISTS,
		Message:  "A decision has already been recorded for this idea",
	}.WithDetail("idea_id", ideaID)
}

func ErrDecisionInvalidStatus(status string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_DECISION_INVALID_STATUS,
		Message:  "Decision status must be approved, rejected or needs_modification",
	}.WithDetail("status", status)
}

// Export Errors
func ErrExportInvalidFormat(format string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EXPORT_INVALID_FORMAT,
		Message:  "Unsupported export format",
	}.WithDetail("format", format)
}

// Meeting Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingAccessDenied(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_MEETING_ACCESS_DENIED,
		Message:  "Access to meeting denied",
	}.WithDetail("meeting_id", meetingID)
}

func ErrParticipantNotFound(participantID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_PARTICIPANT_NOT_FOUND,
		Message:  "Participant not found",
	}.WithDetail("participant_id", participantID)
}

func ErrParticipantAlreadyExists(userID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PARTICIPANT_ALREADY_EXISTS,
		Message:  "User is already a participant of this meeting",
	}.WithDetail("user_id", userID)
}

func ErrChairmanAlreadyAssigned(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_CHAIRMAN_ALREADY_ASSIGNED,
		Message:  "Meeting already has a chairman",
	}.WithDetail("meeting_id", meetingID)
}

func ErrAgendaItemNotFound(itemID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AGENDA_ITEM_NOT_FOUND,
		Message:  "Agenda item not found",
	}.WithDetail("agenda_item_id", itemID)
}

func ErrTaskNotFound(taskID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TASK_NOT_FOUND,
		Message:  "Task not found",
	}.WithDetail("task_id", taskID)
}

// Folder Errors
func ErrFolderNotFound(folderID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_FOLDER_NOT_FOUND,
		Message:  "Folder not found",
	}.WithDetail("folder_id", folderID)
}

func ErrFolderNotEmpty(folderID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_FOLDER_NOT_EMPTY,
		Message:  "Folder still contains meetings, delete with force=true to keep them outside any folder",
	}.WithDetail("folder_id", folderID)
}

func ErrFolderMemberNotFound(userID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_FOLDER_MEMBER_NOT_FOUND,
		Message:  "Folder member not found",
	}.WithDetail("user_id", userID)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrSearchFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INTEGRATION_SEARCH_FAILED,
		Message:  "Search backend failed",
	}
}

