package idea

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/search"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

// Service defines the idea use cases
type Service interface {
	// Ideas
	CreateIdea(ctx context.Context, input CreateIdeaInput) (*entities.Idea, error)
	SubmitIdea(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*entities.Idea, error)
	GetIdea(ctx context.Context, ideaID uuid.UUID) (*entities.Idea, error)
	ListIdeas(ctx context.Context, filters repositories.IdeaFilters) ([]*entities.Idea, int64, error)
	SearchIdeas(ctx context.Context, input SearchIdeasInput) ([]*entities.Idea, int64, error)
	UpdateIdea(ctx context.Context, input UpdateIdeaInput) (*entities.Idea, error)
	DeleteIdea(ctx context.Context, p auth.Principal, ideaID uuid.UUID) error

	// Discussion
	GetCountdown(ctx context.Context, ideaID uuid.UUID) (*Countdown, error)
	AdjustDiscussion(ctx context.Context, input AdjustDiscussionInput) (*Countdown, error)
	EndDiscussion(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*Countdown, error)
	CloseExpiredDiscussions(ctx context.Context, limit int) (int, error)

	// Comments
	AddComment(ctx context.Context, input AddCommentInput) (*entities.Comment, error)
	ListComments(ctx context.Context, ideaID uuid.UUID) ([]*entities.Comment, error)
	DeleteComment(ctx context.Context, p auth.Principal, commentID uuid.UUID) error

	// Votes
	CastVote(ctx context.Context, p auth.Principal, ideaID uuid.UUID, value entities.VoteValue) (*VoteResult, error)
	RetractVote(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*VoteResult, error)
	ListVotes(ctx context.Context, ideaID uuid.UUID) ([]*entities.Vote, error)
	VoteSummary(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*VoteResult, error)

	// Decisions
	RecordDecision(ctx context.Context, input RecordDecisionInput) (*entities.Decision, error)
	GetDecision(ctx context.Context, ideaID uuid.UUID) (*entities.Decision, error)
	DeleteDecision(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*entities.Idea, error)
}

// SearchIndex is the full-text index kept next to the ideas table
type SearchIndex interface {
	Index(ctx context.Context, idea *entities.Idea) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q search.Query) ([]uuid.UUID, int64, error)
}

// AttachmentStore holds comment attachments
type AttachmentStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	RemoveFile(ctx context.Context, objectName string) error
	PublicFileURL(objectName string) string
}

// CreateIdeaInput represents input for creating an idea
type CreateIdeaInput struct {
	Principal             auth.Principal
	Title                 string
	Description           string
	Category              *string
	DiscussionPeriod      string
	ProposedExecutionDate *time.Time
	Submit                bool
}

// UpdateIdeaInput carries the fields to change; nil fields are left alone.
// Version is the version the client last read, 0 skips the early check.
type UpdateIdeaInput struct {
	Principal             auth.Principal
	IdeaID                uuid.UUID
	Version               int
	Title                 *string
	Description           *string
	Category              *string
	DiscussionPeriod      *string
	ProposedExecutionDate *time.Time
}

// SearchIdeasInput represents a full-text query
type SearchIdeasInput struct {
	Query  string
	Status *entities.IdeaStatus
	Limit  int
	Offset int
}

// AdjustDiscussionInput extends or shortens a discussion
type AdjustDiscussionInput struct {
	Principal auth.Principal
	IdeaID    uuid.UUID
	Version   int
	Days      int
	Hours     int
	Operation discussion.Operation
}

// AttachmentInput is a file sent with a comment
type AttachmentInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AddCommentInput represents input for commenting on an idea
type AddCommentInput struct {
	Principal  auth.Principal
	IdeaID     uuid.UUID
	ParentID   *uuid.UUID
	Content    string
	Attachment *AttachmentInput
}

// RecordDecisionInput represents the admin outcome of an idea
type RecordDecisionInput struct {
	Principal auth.Principal
	IdeaID    uuid.UUID
	Version   int
	Status    entities.IdeaStatus
	Reason    string
	Assignees []entities.Assignee
	Timeline  *string
	Budget    *string
}

// StateNotStarted is reported for drafts, which have no discussion yet
const StateNotStarted discussion.State = "not_started"

// Countdown is the discussion clock of an idea
type Countdown struct {
	IdeaID     uuid.UUID            `json:"idea_id"`
	Status     entities.IdeaStatus  `json:"status"`
	Period     string               `json:"discussion_period"`
	TotalHours int                  `json:"total_hours"`
	State      discussion.State     `json:"state"`
	Remaining  discussion.Remaining `json:"remaining"`
	StartedAt  *time.Time           `json:"started_at,omitempty"`
	EndsAt     *time.Time           `json:"ends_at,omitempty"`
	Version    int                  `json:"version"`
}

// VoteResult is the tally of an idea plus the caller's own vote
type VoteResult struct {
	IdeaID  uuid.UUID            `json:"idea_id"`
	Summary entities.VoteSummary `json:"summary"`
	Mine    *entities.VoteValue  `json:"mine,omitempty"`
}
