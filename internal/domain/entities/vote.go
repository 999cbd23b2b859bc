package entities

import (
	"time"

	"github.com/google/uuid"
)

// VoteValue is a member's stance on an idea
type VoteValue string

const (
	VoteAgree    VoteValue = "agree"
	VoteDisagree VoteValue = "disagree"
	VoteNeutral  VoteValue = "neutral"
)

// IsValid checks if the vote value is known
func (v VoteValue) IsValid() bool {
	switch v {
	case VoteAgree, VoteDisagree, VoteNeutral:
		return true
	}
	return false
}

// Vote is unique per (idea, user)
type Vote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IdeaID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_idea_user" json:"idea_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_idea_user" json:"user_id"`
	Voter     *User     `gorm:"foreignKey:UserID" json:"voter,omitempty"`
	Value     VoteValue `gorm:"type:varchar(20);not null" json:"value"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// VoteSummary counts votes per value
type VoteSummary struct {
	Agree    int `json:"agree"`
	Disagree int `json:"disagree"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

// SummarizeVotes tallies a list of votes; unknown values only count toward the total
func SummarizeVotes(votes []*Vote) VoteSummary {
	var s VoteSummary
	for _, v := range votes {
		switch v.Value {
		case VoteAgree:
			s.Agree++
		case VoteDisagree:
			s.Disagree++
		case VoteNeutral:
			s.Neutral++
		}
		s.Total++
	}
	return s
}
