package idea

import (
	"time"

	"github.com/johnquangdev/idea-hub/internal/adapter/dto/common"
	"github.com/johnquangdev/idea-hub/internal/adapter/dto/user"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

// IdeaResponse represents an idea with its display labels and countdown
type IdeaResponse struct {
	ID                    string             `json:"id"`
	Title                 string             `json:"title"`
	Description           string             `json:"description"`
	Status                string             `json:"status"`
	StatusLabel           string             `json:"status_label"`
	StatusClass           string             `json:"status_class"`
	Category              *string            `json:"category,omitempty"`
	CreatedBy             string             `json:"created_by"`
	Creator               *user.UserSummary  `json:"creator,omitempty"`
	DiscussionPeriod      string             `json:"discussion_period"`
	DiscussionState       string             `json:"discussion_state"`
	Remaining             *RemainingResponse `json:"remaining,omitempty"`
	DiscussionStartedAt   *time.Time         `json:"discussion_started_at,omitempty"`
	DiscussionEndsAt      *time.Time         `json:"discussion_ends_at,omitempty"`
	ProposedExecutionDate *string            `json:"proposed_execution_date,omitempty"`
	Version               int                `json:"version"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// RemainingResponse is the time left in a discussion
type RemainingResponse struct {
	Days         int   `json:"days"`
	Hours        int   `json:"hours"`
	Minutes      int   `json:"minutes"`
	Seconds      int   `json:"seconds"`
	TotalSeconds int64 `json:"total_seconds"`
}

// IdeaListResponse is a page of ideas
type IdeaListResponse struct {
	Ideas []*IdeaResponse `json:"ideas"`
	common.Pagination
}

// CountdownResponse is the discussion clock of an idea
type CountdownResponse struct {
	IdeaID      string             `json:"idea_id"`
	Status      string             `json:"status"`
	StatusLabel string             `json:"status_label"`
	Period      string             `json:"discussion_period"`
	TotalHours  int                `json:"total_hours"`
	State       discussion.State   `json:"state"`
	Remaining   *RemainingResponse `json:"remaining"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
	EndsAt      *time.Time         `json:"ends_at,omitempty"`
	Version     int                `json:"version"`
}

// CommentResponse represents a comment with its replies when listed as a tree
type CommentResponse struct {
	ID             string             `json:"id"`
	IdeaID         string             `json:"idea_id"`
	ParentID       *string            `json:"parent_id,omitempty"`
	Content        string             `json:"content"`
	CreatedBy      string             `json:"created_by"`
	Author         *user.UserSummary  `json:"author,omitempty"`
	AttachmentURL  *string            `json:"attachment_url,omitempty"`
	AttachmentType *string            `json:"attachment_type,omitempty"`
	AttachmentName *string            `json:"attachment_name,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	Replies        []*CommentResponse `json:"replies,omitempty"`
}

// VoteResponse is a single vote
type VoteResponse struct {
	UserID     string            `json:"user_id"`
	Voter      *user.UserSummary `json:"voter,omitempty"`
	Value      string            `json:"value"`
	ValueLabel string            `json:"value_label"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// VoteSummaryResponse is the tally plus the caller's own vote
type VoteSummaryResponse struct {
	IdeaID   string  `json:"idea_id"`
	Agree    int     `json:"agree"`
	Disagree int     `json:"disagree"`
	Neutral  int     `json:"neutral"`
	Total    int     `json:"total"`
	Mine     *string `json:"mine,omitempty"`
}

// AssigneeResponse is one person responsible for executing a decision
type AssigneeResponse struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Responsibility string `json:"responsibility,omitempty"`
}

// DecisionResponse is the recorded outcome of an idea
type DecisionResponse struct {
	ID          string             `json:"id"`
	IdeaID      string             `json:"idea_id"`
	Status      string             `json:"status"`
	StatusLabel string             `json:"status_label"`
	Reason      string             `json:"reason"`
	Assignees   []AssigneeResponse `json:"assignees"`
	Timeline    *string            `json:"timeline,omitempty"`
	Budget      *string            `json:"budget,omitempty"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
}
