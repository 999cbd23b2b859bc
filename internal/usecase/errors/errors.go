package errors

import "errors"

// Common errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden access")
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrConflict       = errors.New("resource conflict")
	ErrInternalError  = errors.New("internal server error")
	ErrVersionChanged = errors.New("resource was modified by someone else, reload and retry")
)

// Auth errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrUserNotFound = errors.New("user not found")
)

// Idea errors
var (
	ErrIdeaNotFound     = errors.New("idea not found")
	ErrIdeaNotEditable  = errors.New("idea can only be edited while draft or needs modification")
	ErrIdeaInvalidState = errors.New("operation not allowed in the idea's current status")
	ErrNotIdeaOwner     = errors.New("user is not the author of this idea")
)

// Discussion errors
var (
	ErrInvalidDiscussionPeriod = errors.New("invalid discussion period")
	ErrInvalidAdjustAmount     = errors.New("adjustment must be a positive number of days and hours")
	ErrReductionExceedsLeft    = errors.New("reduction is larger than the remaining discussion time")
	ErrDiscussionClosed        = errors.New("discussion is closed")
	ErrDiscussionNotStarted    = errors.New("discussion has not started")
)

// Comment and vote errors
var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrInvalidCommentParent = errors.New("parent comment does not belong to this idea")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrInvalidVote          = errors.New("invalid vote value")
	ErrAttachmentTooLarge   = errors.New("attachment exceeds the upload limit")
	ErrStorageDisabled      = errors.New("attachment storage is not configured")
)

// Decision errors
var (
	ErrDecisionNotFound      = errors.New("decision not found")
	ErrDecisionAlreadyExists = errors.New("idea already has a decision")
	ErrInvalidDecisionStatus = errors.New("decision status must be approved, rejected or needs_modification")
)

// Export errors
var (
	ErrInvalidExportFormat = errors.New("export format must be txt, zip or pdf")
	ErrNothingToExport     = errors.New("select at least one section to export")
)

// Meeting errors
var (
	ErrMeetingNotFound          = errors.New("meeting not found")
	ErrMeetingAccessDenied      = errors.New("access denied to this meeting")
	ErrInvalidMeetingStatus     = errors.New("invalid meeting status")
	ErrParticipantNotFound      = errors.New("participant not found")
	ErrParticipantAlreadyExists = errors.New("user already participates in this meeting")
	ErrChairmanAlreadyAssigned  = errors.New("meeting already has a chairman")
	ErrAgendaItemNotFound       = errors.New("agenda item not found")
	ErrInvalidAgendaOrder       = errors.New("agenda order must list every item of the meeting exactly once")
	ErrMinutesNotFound          = errors.New("minutes not recorded yet")
	ErrTaskNotFound             = errors.New("task not found")
)

// Folder errors
var (
	ErrFolderNotFound       = errors.New("folder not found")
	ErrFolderNotEmpty       = errors.New("folder still contains meetings")
	ErrFolderAccessDenied   = errors.New("access denied to this folder")
	ErrFolderMemberNotFound = errors.New("folder member not found")
	ErrFolderMemberExists   = errors.New("user is already a member of this folder")
	ErrCannotShareWithOwner = errors.New("the owner already has full access")
)

// Integration errors
var (
	ErrSearchUnavailable = errors.New("search is unavailable")
	ErrStorageFailed     = errors.New("storage operation failed")
)
