package presenter

import (
	"time"

	"github.com/johnquangdev/idea-hub/internal/adapter/dto/common"
	ideaDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/idea"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	ideaUsecase "github.com/johnquangdev/idea-hub/internal/usecase/idea"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

const dateLayout = "2006-01-02"

// ToIdeaResponse converts an Idea entity, evaluating its countdown at now
func ToIdeaResponse(i *entities.Idea, locale entities.Locale, now time.Time) *ideaDTO.IdeaResponse {
	if i == nil {
		return nil
	}

	response := &ideaDTO.IdeaResponse{
		ID:                  i.ID.String(),
		Title:               i.Title,
		Description:         i.Description,
		Status:              string(i.Status),
		StatusLabel:         entities.StatusDisplay(i.Status, locale),
		StatusClass:         entities.StatusClass(i.Status),
		Category:            i.Category,
		CreatedBy:           i.CreatedBy.String(),
		Creator:             ToUserSummary(i.Creator),
		DiscussionPeriod:    i.DiscussionPeriod,
		DiscussionState:     string(ideaUsecase.StateNotStarted),
		DiscussionStartedAt: i.DiscussionStartedAt,
		DiscussionEndsAt:    i.DiscussionEndsAt,
		Version:             i.Version,
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}

	if i.HasDiscussion() {
		response.DiscussionState = string(i.DiscussionState(now))
		response.Remaining = toRemaining(i.DiscussionRemaining(now))
	}
	if i.ProposedExecutionDate != nil {
		d := i.ProposedExecutionDate.Format(dateLayout)
		response.ProposedExecutionDate = &d
	}

	return response
}

// ToIdeaListResponse converts a page of ideas
func ToIdeaListResponse(ideas []*entities.Idea, total int64, page, pageSize int, locale entities.Locale, now time.Time) *ideaDTO.IdeaListResponse {
	responses := make([]*ideaDTO.IdeaResponse, len(ideas))
	for i, idea := range ideas {
		responses[i] = ToIdeaResponse(idea, locale, now)
	}

	return &ideaDTO.IdeaListResponse{
		Ideas:      responses,
		Pagination: common.NewPagination(total, page, pageSize),
	}
}

// ToCountdownResponse converts a discussion clock
func ToCountdownResponse(c *ideaUsecase.Countdown, locale entities.Locale) *ideaDTO.CountdownResponse {
	if c == nil {
		return nil
	}
	return &ideaDTO.CountdownResponse{
		IdeaID:      c.IdeaID.String(),
		Status:      string(c.Status),
		StatusLabel: entities.StatusDisplay(c.Status, locale),
		Period:      c.Period,
		TotalHours:  c.TotalHours,
		State:       c.State,
		Remaining:   toRemaining(c.Remaining),
		StartedAt:   c.StartedAt,
		EndsAt:      c.EndsAt,
		Version:     c.Version,
	}
}

func toRemaining(r discussion.Remaining) *ideaDTO.RemainingResponse {
	return &ideaDTO.RemainingResponse{
		Days:         r.Days,
		Hours:        r.Hours,
		Minutes:      r.Minutes,
		Seconds:      r.Seconds,
		TotalSeconds: int64(r.Duration() / time.Second),
	}
}

// ToCommentResponse converts a single comment
func ToCommentResponse(c *entities.Comment) *ideaDTO.CommentResponse {
	if c == nil {
		return nil
	}

	response := &ideaDTO.CommentResponse{
		ID:             c.ID.String(),
		IdeaID:         c.IdeaID.String(),
		Content:        c.Content,
		CreatedBy:      c.CreatedBy.String(),
		Author:         ToUserSummary(c.Author),
		AttachmentURL:  c.AttachmentURL,
		AttachmentType: c.AttachmentType,
		AttachmentName: c.AttachmentName,
		CreatedAt:      c.CreatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.String()
		response.ParentID = &parent
	}
	return response
}

// ToCommentResponses converts a flat, ordered list
func ToCommentResponses(comments []*entities.Comment) []*ideaDTO.CommentResponse {
	out := make([]*ideaDTO.CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = ToCommentResponse(c)
	}
	return out
}

// ToCommentTree nests replies under their parents
func ToCommentTree(comments []*entities.Comment) []*ideaDTO.CommentResponse {
	return toCommentNodes(entities.BuildCommentTree(comments))
}

func toCommentNodes(nodes []*entities.CommentNode) []*ideaDTO.CommentResponse {
	out := make([]*ideaDTO.CommentResponse, len(nodes))
	for i, n := range nodes {
		r := ToCommentResponse(n.Comment)
		if len(n.Replies) > 0 {
			r.Replies = toCommentNodes(n.Replies)
		}
		out[i] = r
	}
	return out
}

// ToVoteResponses converts the votes of an idea
func ToVoteResponses(votes []*entities.Vote, locale entities.Locale) []*ideaDTO.VoteResponse {
	out := make([]*ideaDTO.VoteResponse, len(votes))
	for i, v := range votes {
		out[i] = &ideaDTO.VoteResponse{
			UserID:     v.UserID.String(),
			Voter:      ToUserSummary(v.Voter),
			Value:      string(v.Value),
			ValueLabel: entities.VoteDisplay(v.Value, locale),
			UpdatedAt:  v.UpdatedAt,
		}
	}
	return out
}

// ToVoteSummaryResponse converts a tally
func ToVoteSummaryResponse(r *ideaUsecase.VoteResult) *ideaDTO.VoteSummaryResponse {
	if r == nil {
		return nil
	}
	response := &ideaDTO.VoteSummaryResponse{
		IdeaID:   r.IdeaID.String(),
		Agree:    r.Summary.Agree,
		Disagree: r.Summary.Disagree,
		Neutral:  r.Summary.Neutral,
		Total:    r.Summary.Total,
	}
	if r.Mine != nil {
		mine := string(*r.Mine)
		response.Mine = &mine
	}
	return response
}

// ToDecisionResponse converts a decision
func ToDecisionResponse(d *entities.Decision, locale entities.Locale) *ideaDTO.DecisionResponse {
	if d == nil {
		return nil
	}

	assignees := d.Assignees()
	list := make([]ideaDTO.AssigneeResponse, len(assignees))
	for i, a := range assignees {
		list[i] = ideaDTO.AssigneeResponse{ID: a.ID, Name: a.Name, Responsibility: a.Responsibility}
	}

	return &ideaDTO.DecisionResponse{
		ID:          d.ID.String(),
		IdeaID:      d.IdeaID.String(),
		Status:      string(d.Status),
		StatusLabel: entities.StatusDisplay(d.Status, locale),
		Reason:      d.Reason,
		Assignees:   list,
		Timeline:    d.Timeline,
		Budget:      d.Budget,
		CreatedBy:   d.CreatedBy.String(),
		CreatedAt:   d.CreatedAt,
	}
}
