package idea

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

// GetCountdown reports the discussion clock of an idea
func (s *IdeaService) GetCountdown(ctx context.Context, ideaID uuid.UUID) (*Countdown, error) {
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	return s.countdown(idea), nil
}

func (s *IdeaService) countdown(idea *entities.Idea) *Countdown {
	now := s.now()
	total, _ := discussion.Parse(idea.DiscussionPeriod)
	c := &Countdown{
		IdeaID:     idea.ID,
		Status:     idea.Status,
		Period:     idea.DiscussionPeriod,
		TotalHours: total,
		Version:    idea.Version,
	}
	if !idea.HasDiscussion() {
		c.State = StateNotStarted
		return c
	}

	start := idea.DiscussionStart()
	c.StartedAt = &start
	if end, err := discussion.EndsAt(idea.DiscussionPeriod, start); err == nil {
		c.EndsAt = &end
	}
	c.State = idea.DiscussionState(now)
	c.Remaining = idea.DiscussionRemaining(now)
	return c
}

// AdjustDiscussion adds time to or removes time from a discussion.
//
// While the discussion runs the period changes and the start stays. Once it is over,
// only adding is allowed and the discussion resumes now with the added amount as its
// period. A reduction that leaves no time moves the idea to pending_decision; one that
// would leave a zero period is refused, zero being the manual-end marker.
func (s *IdeaService) AdjustDiscussion(ctx context.Context, input AdjustDiscussionInput) (*Countdown, error) {
	if !input.Principal.IsAdmin() {
		return nil, ucerrors.ErrForbidden
	}
	if input.Operation != discussion.OperationAdd && input.Operation != discussion.OperationSubtract {
		return nil, ucerrors.ErrInvalidAdjustAmount
	}
	amount, err := discussion.Amount(input.Days, input.Hours)
	if err != nil {
		return nil, ucerrors.ErrInvalidAdjustAmount
	}

	idea, err := s.findIdea(ctx, input.IdeaID)
	if err != nil {
		return nil, err
	}
	if input.Version != 0 && input.Version != idea.Version {
		return nil, ucerrors.ErrVersionChanged
	}
	if idea.Status != entities.IdeaStatusUnderReview && idea.Status != entities.IdeaStatusPendingDecision {
		if idea.Status == entities.IdeaStatusDraft {
			return nil, ucerrors.ErrDiscussionNotStarted
		}
		return nil, ucerrors.ErrIdeaInvalidState
	}

	now := s.now()
	if idea.DiscussionState(now) == discussion.StateActive {
		current, _ := discussion.Parse(idea.DiscussionPeriod)
		if input.Operation == discussion.OperationSubtract {
			left := discussion.Left(idea.DiscussionPeriod, idea.DiscussionStart(), now)
			if err := discussion.CheckReduction(amount, left); err != nil {
				return nil, ucerrors.ErrReductionExceedsLeft
			}
		}
		next, err := discussion.Adjust(current, input.Days, input.Hours, input.Operation)
		if errors.Is(err, discussion.ErrPeriodTooLong) {
			return nil, ucerrors.ErrInvalidDiscussionPeriod
		}
		if err != nil {
			return nil, ucerrors.ErrInvalidAdjustAmount
		}
		if next == 0 {
			return nil, ucerrors.ErrReductionExceedsLeft
		}
		idea.DiscussionPeriod = discussion.Format(next)
		idea.RefreshDiscussionEnd()
		if idea.DiscussionState(now) == discussion.StateActive {
			idea.Status = entities.IdeaStatusUnderReview
		} else {
			idea.Status = entities.IdeaStatusPendingDecision
		}
	} else {
		if input.Operation == discussion.OperationSubtract {
			return nil, ucerrors.ErrDiscussionClosed
		}
		idea.DiscussionPeriod = discussion.Format(amount)
		idea.StartDiscussion(now)
	}

	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, s.mapWriteError(err, "adjust discussion")
	}

	s.logger.Info("🔄 Discussion adjusted",
		zap.String("idea_id", idea.ID.String()),
		zap.String("operation", string(input.Operation)),
		zap.Int("amount_hours", amount),
		zap.String("period", idea.DiscussionPeriod),
		zap.String("status", string(idea.Status)),
	)

	c := s.countdown(idea)
	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.DiscussionAdjusted, idea, c)
	return c, nil
}

// EndDiscussion closes a running discussion by hand
func (s *IdeaService) EndDiscussion(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*Countdown, error) {
	if !p.IsAdmin() {
		return nil, ucerrors.ErrForbidden
	}
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	switch idea.Status {
	case entities.IdeaStatusDraft:
		return nil, ucerrors.ErrDiscussionNotStarted
	case entities.IdeaStatusUnderReview, entities.IdeaStatusPendingDecision:
	default:
		return nil, ucerrors.ErrIdeaInvalidState
	}
	if discussion.IsManualEnd(idea.DiscussionPeriod) {
		return nil, ucerrors.ErrDiscussionClosed
	}

	idea.DiscussionPeriod = discussion.ManualEndSentinel
	idea.Status = entities.IdeaStatusPendingDecision
	idea.RefreshDiscussionEnd()

	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, s.mapWriteError(err, "end discussion")
	}

	s.logger.Info("✅ Discussion ended manually",
		zap.String("idea_id", idea.ID.String()),
		zap.String("ended_by", p.UserID.String()),
	)

	c := s.countdown(idea)
	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.DiscussionEnded, idea, c)
	return c, nil
}

// CloseExpiredDiscussions moves up to limit under_review ideas whose window has passed
// to pending_decision. Ideas changed concurrently are skipped and picked up next run.
func (s *IdeaService) CloseExpiredDiscussions(ctx context.Context, limit int) (int, error) {
	now := s.now()
	ideas, err := s.ideaRepo.FindExpiredDiscussions(ctx, now, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired discussions: %w", err)
	}

	closed := 0
	for _, idea := range ideas {
		if idea.DiscussionState(now) == discussion.StateActive {
			continue
		}
		idea.Status = entities.IdeaStatusPendingDecision
		if err := s.ideaRepo.Update(ctx, idea); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return closed, fmt.Errorf("failed to close discussion %s: %w", idea.ID, err)
		}
		closed++
		s.indexIdea(ctx, idea)
		s.publishIdea(ctx, events.DiscussionEnded, idea, s.countdown(idea))
	}
	return closed, nil
}
