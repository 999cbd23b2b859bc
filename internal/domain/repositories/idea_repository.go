package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// IdeaRepository defines the interface for idea data access
type IdeaRepository interface {
	// Create creates a new idea
	Create(ctx context.Context, idea *entities.Idea) error

	// FindByID retrieves an idea by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Idea, error)

	// FindByIDs retrieves ideas keeping the order of ids
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Idea, error)

	// Update writes the idea when its stored version equals idea.Version,
	// then bumps idea.Version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, idea *entities.Idea) error

	// Delete removes an idea together with its comments, votes and decision
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves ideas with filters and pagination
	List(ctx context.Context, filters IdeaFilters) ([]*entities.Idea, int64, error)

	// FindExpiredDiscussions returns under_review ideas whose discussion ended before now
	FindExpiredDiscussions(ctx context.Context, now time.Time, limit int) ([]*entities.Idea, error)
}

// IdeaFilters represents filter options for listing ideas
type IdeaFilters struct {
	Status    *entities.IdeaStatus
	Category  *string
	CreatedBy *uuid.UUID
	Search    string // Search in title, description
	Limit     int
	Offset    int
	SortBy    string // "created_at", "updated_at", "title", "status"
	SortOrder string // "asc", "desc"
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error)

	// ListByIdea returns comments of an idea in creation order
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]*entities.Comment, error)

	// Delete removes a comment and its replies
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoteRepository defines the interface for vote data access
type VoteRepository interface {
	// Upsert inserts or replaces the vote of (idea, user)
	Upsert(ctx context.Context, vote *entities.Vote) error
	FindByIdeaAndUser(ctx context.Context, ideaID, userID uuid.UUID) (*entities.Vote, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]*entities.Vote, error)
	Delete(ctx context.Context, ideaID, userID uuid.UUID) error
}

// DecisionRepository defines the interface for decision data access
type DecisionRepository interface {
	FindByIdea(ctx context.Context, ideaID uuid.UUID) (*entities.Decision, error)

	// CreateWithIdeaStatus inserts the decision and writes idea (its new status)
	// in one transaction with the same version check as IdeaRepository.Update
	CreateWithIdeaStatus(ctx context.Context, decision *entities.Decision, idea *entities.Idea) error

	// DeleteWithIdeaStatus removes the decision of idea and writes idea in one transaction
	DeleteWithIdeaStatus(ctx context.Context, idea *entities.Idea) error
}
