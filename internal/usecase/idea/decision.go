package idea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

// RecordDecision stores the single decision of an idea and moves the idea to its status
func (s *IdeaService) RecordDecision(ctx context.Context, input RecordDecisionInput) (*entities.Decision, error) {
	if !input.Principal.IsAdmin() {
		return nil, ucerrors.ErrForbidden
	}
	if !input.Status.IsDecision() {
		return nil, ucerrors.ErrInvalidDecisionStatus
	}

	idea, err := s.findIdea(ctx, input.IdeaID)
	if err != nil {
		return nil, err
	}
	if input.Version != 0 && input.Version != idea.Version {
		return nil, ucerrors.ErrVersionChanged
	}
	if idea.Status == entities.IdeaStatusDraft {
		return nil, ucerrors.ErrDiscussionNotStarted
	}

	if _, err := s.decisionRepo.FindByIdea(ctx, idea.ID); err == nil {
		return nil, ucerrors.ErrDecisionAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	decision := &entities.Decision{
		IdeaID:    idea.ID,
		Status:    input.Status,
		Reason:    strings.TrimSpace(input.Reason),
		Timeline:  trimmed(input.Timeline),
		Budget:    trimmed(input.Budget),
		CreatedBy: input.Principal.UserID,
	}
	if err := decision.SetAssignees(input.Assignees); err != nil {
		return nil, fmt.Errorf("failed to encode assignees: %w", err)
	}

	// a decision closes whatever is left of the discussion
	idea.Status = input.Status
	if err := s.decisionRepo.CreateWithIdeaStatus(ctx, decision, idea); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ucerrors.ErrDecisionAlreadyExists
		}
		return nil, s.mapWriteError(err, "record decision")
	}

	s.logger.Info("✅ Decision recorded",
		zap.String("idea_id", idea.ID.String()),
		zap.String("status", string(decision.Status)),
		zap.String("decided_by", input.Principal.UserID.String()),
	)

	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.DecisionRecorded, idea, decision)
	return decision, nil
}

// GetDecision returns the decision of an idea
func (s *IdeaService) GetDecision(ctx context.Context, ideaID uuid.UUID) (*entities.Decision, error) {
	decision, err := s.decisionRepo.FindByIdea(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return decision, nil
}

// DeleteDecision removes the decision. The idea goes back to under_review when its
// discussion is still running and to pending_decision otherwise.
func (s *IdeaService) DeleteDecision(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*entities.Idea, error) {
	if !p.IsAdmin() {
		return nil, ucerrors.ErrForbidden
	}
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	if idea.DiscussionState(s.now()) == discussion.StateActive {
		idea.Status = entities.IdeaStatusUnderReview
	} else {
		idea.Status = entities.IdeaStatusPendingDecision
	}

	if err := s.decisionRepo.DeleteWithIdeaStatus(ctx, idea); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ucerrors.ErrDecisionNotFound
		case errors.Is(err, repositories.ErrVersionConflict):
			return nil, ucerrors.ErrVersionChanged
		}
		return nil, fmt.Errorf("failed to delete decision: %w", err)
	}

	s.logger.Info("🔄 Decision deleted",
		zap.String("idea_id", idea.ID.String()),
		zap.String("reverted_to", string(idea.Status)),
	)

	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.DecisionDeleted, idea, idea)
	return idea, nil
}
