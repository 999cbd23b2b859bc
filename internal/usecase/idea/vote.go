package idea

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// CastVote records or replaces the caller's vote while the discussion is open
func (s *IdeaService) CastVote(ctx context.Context, p auth.Principal, ideaID uuid.UUID, value entities.VoteValue) (*VoteResult, error) {
	if !value.IsValid() {
		return nil, ucerrors.ErrInvalidVote
	}
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if err := s.openForDiscussion(idea); err != nil {
		return nil, err
	}

	vote := &entities.Vote{IdeaID: ideaID, UserID: p.UserID, Value: value}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	result, err := s.tally(ctx, ideaID, p.UserID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.ForIdea(events.VoteCast, ideaID, idea.Version, result.Summary))
	return result, nil
}

// RetractVote removes the caller's vote while the discussion is open
func (s *IdeaService) RetractVote(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*VoteResult, error) {
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if err := s.openForDiscussion(idea); err != nil {
		return nil, err
	}

	if err := s.voteRepo.Delete(ctx, ideaID, p.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to retract vote: %w", err)
	}

	result, err := s.tally(ctx, ideaID, p.UserID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.ForIdea(events.VoteRetracted, ideaID, idea.Version, result.Summary))
	return result, nil
}

// ListVotes returns every vote on an idea
func (s *IdeaService) ListVotes(ctx context.Context, ideaID uuid.UUID) ([]*entities.Vote, error) {
	if _, err := s.findIdea(ctx, ideaID); err != nil {
		return nil, err
	}
	votes, err := s.voteRepo.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

// VoteSummary tallies the votes of an idea for the caller
func (s *IdeaService) VoteSummary(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*VoteResult, error) {
	if _, err := s.findIdea(ctx, ideaID); err != nil {
		return nil, err
	}
	return s.tally(ctx, ideaID, p.UserID)
}

func (s *IdeaService) tally(ctx context.Context, ideaID, userID uuid.UUID) (*VoteResult, error) {
	votes, err := s.voteRepo.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	result := &VoteResult{IdeaID: ideaID, Summary: entities.SummarizeVotes(votes)}
	for _, v := range votes {
		if v.UserID == userID {
			value := v.Value
			result.Mine = &value
			break
		}
	}
	return result, nil
}
