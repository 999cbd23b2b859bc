package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

// IdeaStatus represents the workflow state of an idea
type IdeaStatus string

const (
	IdeaStatusDraft             IdeaStatus = "draft"
	IdeaStatusUnderReview       IdeaStatus = "under_review"
	IdeaStatusPendingDecision   IdeaStatus = "pending_decision"
	IdeaStatusApproved          IdeaStatus = "approved"
	IdeaStatusRejected          IdeaStatus = "rejected"
	IdeaStatusNeedsModification IdeaStatus = "needs_modification"
)

// IdeaStatuses lists every known status in workflow order
var IdeaStatuses = []IdeaStatus{
	IdeaStatusDraft,
	IdeaStatusUnderReview,
	IdeaStatusPendingDecision,
	IdeaStatusApproved,
	IdeaStatusRejected,
	IdeaStatusNeedsModification,
}

// IsValid checks if the status is known
func (s IdeaStatus) IsValid() bool {
	for _, v := range IdeaStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsDecision reports whether the status can be the outcome of a decision
func (s IdeaStatus) IsDecision() bool {
	switch s {
	case IdeaStatusApproved, IdeaStatusRejected, IdeaStatusNeedsModification:
		return true
	}
	return false
}

// DefaultDiscussionPeriod is used when an idea is created without one
const DefaultDiscussionPeriod = "2 days"

// Idea represents a submitted proposal
type Idea struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title                 string     `gorm:"type:varchar(255);not null" json:"title"`
	Description           string     `gorm:"type:text;not null" json:"description"`
	Status                IdeaStatus `gorm:"type:varchar(30);not null;default:'draft';index" json:"status"`
	Category              *string    `gorm:"type:varchar(100);index" json:"category,omitempty"`
	CreatedBy             uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator               *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	DiscussionPeriod      string     `gorm:"type:varchar(50);not null;default:'2 days'" json:"discussion_period"`
	DiscussionStartedAt   *time.Time `json:"discussion_started_at,omitempty"`
	DiscussionEndsAt      *time.Time `gorm:"index" json:"discussion_ends_at,omitempty"`
	ProposedExecutionDate *time.Time `gorm:"type:date" json:"proposed_execution_date,omitempty"`
	Version               int        `gorm:"not null;default:1" json:"version"`
	CreatedAt             time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Idea
func (Idea) TableName() string {
	return "ideas"
}

// DiscussionStart is the instant the current discussion window opened.
// Ideas created before the column existed fall back to created_at.
func (i *Idea) DiscussionStart() time.Time {
	if i.DiscussionStartedAt != nil {
		return *i.DiscussionStartedAt
	}
	return i.CreatedAt
}

// HasDiscussion reports whether the idea ever entered discussion
func (i *Idea) HasDiscussion() bool {
	return i.Status != IdeaStatusDraft
}

// DiscussionState classifies the discussion window at now
func (i *Idea) DiscussionState(now time.Time) discussion.State {
	return discussion.StateOf(i.DiscussionPeriod, i.DiscussionStart(), now)
}

// DiscussionRemaining returns the countdown at now
func (i *Idea) DiscussionRemaining(now time.Time) discussion.Remaining {
	if i.DiscussionState(now) != discussion.StateActive {
		return discussion.Remaining{}
	}
	return discussion.CalculateRemaining(i.DiscussionPeriod, i.DiscussionStart(), now)
}

// IsDiscussionOpen reports whether comments and votes are accepted at now
func (i *Idea) IsDiscussionOpen(now time.Time) bool {
	return i.Status == IdeaStatusUnderReview && i.DiscussionState(now) == discussion.StateActive
}

// CanBeEdited checks if the content may still change
func (i *Idea) CanBeEdited() bool {
	return i.Status == IdeaStatusDraft || i.Status == IdeaStatusNeedsModification
}

// IsOwnedBy checks the author
func (i *Idea) IsOwnedBy(userID uuid.UUID) bool {
	return i.CreatedBy == userID
}

// StartDiscussion opens a fresh discussion window
func (i *Idea) StartDiscussion(now time.Time) {
	i.Status = IdeaStatusUnderReview
	i.DiscussionStartedAt = &now
	i.RefreshDiscussionEnd()
}

// RefreshDiscussionEnd recomputes the stored end instant from period and start.
// The column only exists so the expiry sweep can filter in SQL.
func (i *Idea) RefreshDiscussionEnd() {
	if !i.HasDiscussion() {
		i.DiscussionEndsAt = nil
		return
	}
	end, err := discussion.EndsAt(i.DiscussionPeriod, i.DiscussionStart())
	if err != nil {
		i.DiscussionEndsAt = nil
		return
	}
	i.DiscussionEndsAt = &end
}
