package errors

import "strconv"

// ErrorCode is the stable, client-facing error code carried in every error body
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007
	ErrorCode_VERSION_CONFLICT  ErrorCode = 1008

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Ideas and discussion
	ErrorCode_IDEA_NOT_FOUND             ErrorCode = 3000
	ErrorCode_IDEA_INVALID_STATE         ErrorCode = 3001
	ErrorCode_DISCUSSION_INVALID_PERIOD  ErrorCode = 3002
	ErrorCode_DISCUSSION_INVALID_AMOUNT  ErrorCode = 3003
	ErrorCode_DISCUSSION_EXCEEDS_LEFT    ErrorCode = 3004
	ErrorCode_DISCUSSION_CLOSED          ErrorCode = 3005
	ErrorCode_COMMENT_NOT_FOUND          ErrorCode = 3100
	ErrorCode_COMMENT_INVALID_PARENT     ErrorCode = 3101
	ErrorCode_DECISION_NOT_FOUND         ErrorCode = 3200
	ErrorCode_DECISION_ALREADY_EXISTS    ErrorCode = 3201
	ErrorCode_DECISION_INVALID_STATUS    ErrorCode = 3202
	ErrorCode_EXPORT_INVALID_FORMAT      ErrorCode = 3300
	ErrorCode_EXPORT_FAILED              ErrorCode = 3301

	// Meetings
	ErrorCode_MEETING_NOT_FOUND          ErrorCode = 4000
	ErrorCode_MEETING_ACCESS_DENIED      ErrorCode = 4001
	ErrorCode_PARTICIPANT_NOT_FOUND      ErrorCode = 4100
	ErrorCode_PARTICIPANT_ALREADY_EXISTS ErrorCode = 4101
	ErrorCode_CHAIRMAN_ALREADY_ASSIGNED  ErrorCode = 4102
	ErrorCode_AGENDA_ITEM_NOT_FOUND      ErrorCode = 4200
	ErrorCode_TASK_NOT_FOUND             ErrorCode = 4300
	ErrorCode_FOLDER_NOT_FOUND           ErrorCode = 4400
	ErrorCode_FOLDER_NOT_EMPTY           ErrorCode = 4401
	ErrorCode_FOLDER_MEMBER_NOT_FOUND    ErrorCode = 4402

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 5001
	ErrorCode_INTEGRATION_SEARCH_FAILED  ErrorCode = 5002

	// Database
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 6000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 6001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                "UNSPECIFIED",
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_VERSION_CONFLICT:           "VERSION_CONFLICT",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_IDEA_NOT_FOUND:             "IDEA_NOT_FOUND",
	ErrorCode_IDEA_INVALID_STATE:         "IDEA_INVALID_STATE",
	ErrorCode_DISCUSSION_INVALID_PERIOD:  "DISCUSSION_INVALID_PERIOD",
	ErrorCode_DISCUSSION_INVALID_AMOUNT:  "DISCUSSION_INVALID_AMOUNT",
	ErrorCode_DISCUSSION_EXCEEDS_LEFT:    "DISCUSSION_EXCEEDS_LEFT",
	ErrorCode_DISCUSSION_CLOSED:          "DISCUSSION_CLOSED",
	ErrorCode_COMMENT_NOT_FOUND:          "COMMENT_NOT_FOUND",
	ErrorCode_COMMENT_INVALID_PARENT:     "COMMENT_INVALID_PARENT",
	ErrorCode_DECISION_NOT_FOUND:         "DECISION_NOT_FOUND",
	ErrorCode_DECISION_ALREADY_EXISTS:    "DECISION_ALREADY_EXISTS",
	ErrorCode_DECISION_INVALID_STATUS:    "DECISION_INVALID_STATUS",
	ErrorCode_EXPORT_INVALID_FORMAT:      "EXPORT_INVALID_FORMAT",
	ErrorCode_EXPORT_FAILED:              "EXPORT_FAILED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_ACCESS_DENIED:      "MEETING_ACCESS_DENIED",
	ErrorCode_PARTICIPANT_NOT_FOUND:      "PARTICIPANT_NOT_FOUND",
	ErrorCode_PARTICIPANT_ALREADY_EXISTS: "PARTICIPANT_ALREADY_EXISTS",
	ErrorCode_CHAIRMAN_ALREADY_ASSIGNED:  "CHAIRMAN_ALREADY_ASSIGNED",
	ErrorCode_AGENDA_ITEM_NOT_FOUND:      "AGENDA_ITEM_NOT_FOUND",
	ErrorCode_TASK_NOT_FOUND:             "TASK_NOT_FOUND",
	ErrorCode_FOLDER_NOT_FOUND:           "FOLDER_NOT_FOUND",
	ErrorCode_FOLDER_NOT_EMPTY:           "FOLDER_NOT_EMPTY",
	ErrorCode_FOLDER_MEMBER_NOT_FOUND:    "FOLDER_MEMBER_NOT_FOUND",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_SEARCH_FAILED:  "INTEGRATION_SEARCH_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name, or the number for codes without one
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
