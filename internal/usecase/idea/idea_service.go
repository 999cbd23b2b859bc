package idea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/search"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
	"github.com/johnquangdev/idea-hub/pkg/discussion"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// IdeaService handles idea business logic
type IdeaService struct {
	ideaRepo     repositories.IdeaRepository
	commentRepo  repositories.CommentRepository
	voteRepo     repositories.VoteRepository
	decisionRepo repositories.DecisionRepository
	publisher    events.Publisher
	logger       *zap.Logger

	index          SearchIndex
	attachments    AttachmentStore
	maxUploadBytes int64
	now            func() time.Time
}

// Option configures optional collaborators of the service
type Option func(*IdeaService)

// WithSearchIndex keeps ideas in a full-text index and searches through it
func WithSearchIndex(index SearchIndex) Option {
	return func(s *IdeaService) { s.index = index }
}

// WithAttachments enables comment attachments up to maxBytes each
func WithAttachments(store AttachmentStore, maxBytes int64) Option {
	return func(s *IdeaService) {
		s.attachments = store
		s.maxUploadBytes = maxBytes
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *IdeaService) { s.now = now }
}

// NewIdeaService creates a new idea service
func NewIdeaService(
	ideaRepo repositories.IdeaRepository,
	commentRepo repositories.CommentRepository,
	voteRepo repositories.VoteRepository,
	decisionRepo repositories.DecisionRepository,
	publisher events.Publisher,
	logger *zap.Logger,
	opts ...Option,
) *IdeaService {
	if publisher == nil {
		publisher = events.Nop
	}
	s := &IdeaService{
		ideaRepo:     ideaRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		decisionRepo: decisionRepo,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateIdea creates a draft, or submits it right away when Submit is set
func (s *IdeaService) CreateIdea(ctx context.Context, input CreateIdeaInput) (*entities.Idea, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, ucerrors.ErrInvalidInput
	}

	period, err := normalizePeriod(input.DiscussionPeriod)
	if err != nil {
		return nil, err
	}

	idea := &entities.Idea{
		Title:                 title,
		Description:           description,
		Category:              trimmed(input.Category),
		Status:                entities.IdeaStatusDraft,
		CreatedBy:             input.Principal.UserID,
		DiscussionPeriod:      period,
		ProposedExecutionDate: input.ProposedExecutionDate,
		Version:               1,
	}
	if input.Submit {
		idea.StartDiscussion(s.now())
	}

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}

	s.logger.Info("✅ Idea created",
		zap.String("idea_id", idea.ID.String()),
		zap.String("status", string(idea.Status)),
		zap.String("created_by", idea.CreatedBy.String()),
	)

	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.IdeaCreated, idea, idea)
	return idea, nil
}

// SubmitIdea opens a fresh discussion for a draft or an idea sent back for changes.
// A previous needs_modification decision is removed in the same transaction.
func (s *IdeaService) SubmitIdea(ctx context.Context, p auth.Principal, ideaID uuid.UUID) (*entities.Idea, error) {
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !idea.IsOwnedBy(p.UserID) && !p.IsAdmin() {
		return nil, ucerrors.ErrNotIdeaOwner
	}
	if !idea.CanBeEdited() {
		return nil, ucerrors.ErrIdeaInvalidState
	}

	resubmission := idea.Status == entities.IdeaStatusNeedsModification
	if discussion.IsManualEnd(idea.DiscussionPeriod) {
		idea.DiscussionPeriod = entities.DefaultDiscussionPeriod
	}
	idea.StartDiscussion(s.now())

	if resubmission {
		err = s.decisionRepo.DeleteWithIdeaStatus(ctx, idea)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = s.ideaRepo.Update(ctx, idea)
		}
	} else {
		err = s.ideaRepo.Update(ctx, idea)
	}
	if err != nil {
		return nil, s.mapWriteError(err, "submit idea")
	}

	s.logger.Info("🔄 Idea submitted for discussion",
		zap.String("idea_id", idea.ID.String()),
		zap.Bool("resubmission", resubmission),
	)

	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.IdeaUpdated, idea, idea)
	return idea, nil
}

// GetIdea retrieves an idea by ID
func (s *IdeaService) GetIdea(ctx context.Context, ideaID uuid.UUID) (*entities.Idea, error) {
	return s.findIdea(ctx, ideaID)
}

// ListIdeas retrieves ideas with filters
func (s *IdeaService) ListIdeas(ctx context.Context, filters repositories.IdeaFilters) ([]*entities.Idea, int64, error) {
	filters.Limit, filters.Offset = page(filters.Limit, filters.Offset)
	ideas, total, err := s.ideaRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, total, nil
}

// SearchIdeas queries the full-text index, or the database when no index is configured
// or the index fails
func (s *IdeaService) SearchIdeas(ctx context.Context, input SearchIdeasInput) ([]*entities.Idea, int64, error) {
	input.Limit, input.Offset = page(input.Limit, input.Offset)
	query := strings.TrimSpace(input.Query)

	if s.index != nil && query != "" {
		ids, total, err := s.index.Search(ctx, search.Query{
			Text:   query,
			Status: input.Status,
			Limit:  input.Limit,
			Offset: input.Offset,
		})
		if err == nil {
			ideas, err := s.ideaRepo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to load search hits: %w", err)
			}
			return ideas, total, nil
		}
		s.logger.Warn("⚠️ Search index unavailable, falling back to database", zap.Error(err))
	}

	return s.ListIdeas(ctx, repositories.IdeaFilters{
		Status: input.Status,
		Search: query,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// UpdateIdea changes the content of an editable idea
func (s *IdeaService) UpdateIdea(ctx context.Context, input UpdateIdeaInput) (*entities.Idea, error) {
	idea, err := s.findIdea(ctx, input.IdeaID)
	if err != nil {
		return nil, err
	}
	if !idea.IsOwnedBy(input.Principal.UserID) && !input.Principal.IsAdmin() {
		return nil, ucerrors.ErrNotIdeaOwner
	}
	if !idea.CanBeEdited() {
		return nil, ucerrors.ErrIdeaNotEditable
	}
	if input.Version != 0 && input.Version != idea.Version {
		return nil, ucerrors.ErrVersionChanged
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ucerrors.ErrInvalidInput
		}
		idea.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, ucerrors.ErrInvalidInput
		}
		idea.Description = description
	}
	if input.Category != nil {
		idea.Category = trimmed(input.Category)
	}
	if input.DiscussionPeriod != nil {
		period, err := normalizePeriod(*input.DiscussionPeriod)
		if err != nil {
			return nil, err
		}
		idea.DiscussionPeriod = period
		idea.RefreshDiscussionEnd()
	}
	if input.ProposedExecutionDate != nil {
		idea.ProposedExecutionDate = input.ProposedExecutionDate
	}

	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, s.mapWriteError(err, "update idea")
	}

	s.indexIdea(ctx, idea)
	s.publishIdea(ctx, events.IdeaUpdated, idea, idea)
	return idea, nil
}

// DeleteIdea removes an idea. Authors may only delete their drafts, admins anything.
func (s *IdeaService) DeleteIdea(ctx context.Context, p auth.Principal, ideaID uuid.UUID) error {
	idea, err := s.findIdea(ctx, ideaID)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		if !idea.IsOwnedBy(p.UserID) {
			return ucerrors.ErrNotIdeaOwner
		}
		if idea.Status != entities.IdeaStatusDraft {
			return ucerrors.ErrIdeaInvalidState
		}
	}

	// collect keys first, the rows go with the idea
	var keys []string
	if s.attachments != nil {
		comments, err := s.commentRepo.ListByIdea(ctx, ideaID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		for _, c := range comments {
			if c.AttachmentKey != nil {
				keys = append(keys, *c.AttachmentKey)
			}
		}
	}

	if err := s.ideaRepo.Delete(ctx, ideaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrIdeaNotFound
		}
		return fmt.Errorf("failed to delete idea: %w", err)
	}

	for _, key := range keys {
		if err := s.attachments.RemoveFile(ctx, key); err != nil {
			s.logger.Warn("⚠️ Failed to remove attachment",
				zap.String("idea_id", ideaID.String()),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	if s.index != nil {
		if err := s.index.Delete(ctx, ideaID); err != nil {
			s.logger.Warn("⚠️ Failed to remove idea from search index",
				zap.String("idea_id", ideaID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("✅ Idea deleted",
		zap.String("idea_id", ideaID.String()),
		zap.String("deleted_by", p.UserID.String()),
	)
	s.publisher.Publish(ctx, events.ForIdea(events.IdeaDeleted, ideaID, idea.Version, nil))
	return nil
}

func (s *IdeaService) findIdea(ctx context.Context, ideaID uuid.UUID) (*entities.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}
	return idea, nil
}

// mapWriteError translates repository write failures on an idea
func (s *IdeaService) mapWriteError(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrVersionConflict):
		return ucerrors.ErrVersionChanged
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ucerrors.ErrIdeaNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// indexIdea is best effort, the database stays the source of truth
func (s *IdeaService) indexIdea(ctx context.Context, idea *entities.Idea) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, idea); err != nil {
		s.logger.Warn("⚠️ Failed to index idea",
			zap.String("idea_id", idea.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *IdeaService) publishIdea(ctx context.Context, t events.Type, idea *entities.Idea, payload interface{}) {
	s.publisher.Publish(ctx, events.ForIdea(t, idea.ID, idea.Version, payload))
}

// normalizePeriod validates a period for a new discussion window. The manual-end
// sentinel is not a valid length.
func normalizePeriod(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return entities.DefaultDiscussionPeriod, nil
	}
	hours, err := discussion.Parse(raw)
	if err != nil || hours <= 0 {
		return "", ucerrors.ErrInvalidDiscussionPeriod
	}
	return discussion.Format(hours), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Service = (*IdeaService)(nil)
