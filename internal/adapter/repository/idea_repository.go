package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
)

// ideaRepository implements the IdeaRepository interface
type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(db *gorm.DB) repositories.IdeaRepository {
	return &ideaRepository{db: db}
}

var ideaSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"status":     "status",
}

// Create creates a new idea
func (r *ideaRepository) Create(ctx context.Context, idea *entities.Idea) error {
	if idea.Version == 0 {
		idea.Version = 1
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(idea).Error
}

// FindByID retrieves an idea by its ID
func (r *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Idea, error) {
	var idea entities.Idea
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		First(&idea).Error

	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// FindByIDs retrieves ideas keeping the order of ids; unknown ids are skipped
func (r *ideaRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Idea, error) {
	if len(ids) == 0 {
		return []*entities.Idea{}, nil
	}

	var found []*entities.Idea
	if err := r.db.WithContext(ctx).Preload("Creator").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entities.Idea, len(found))
	for _, idea := range found {
		byID[idea.ID] = idea
	}
	ordered := make([]*entities.Idea, 0, len(found))
	for _, id := range ids {
		if idea, ok := byID[id]; ok {
			ordered = append(ordered, idea)
		}
	}
	return ordered, nil
}

// Update writes the idea under the optimistic version check
func (r *ideaRepository) Update(ctx context.Context, idea *entities.Idea) error {
	return updateIdea(r.db.WithContext(ctx), idea)
}

// updateIdea is shared with the decision repository so both run the same check inside transactions
func updateIdea(tx *gorm.DB, idea *entities.Idea) error {
	now := time.Now()
	result := tx.Model(&entities.Idea{}).
		Where("id = ? AND version = ?", idea.ID, idea.Version).
		Updates(map[string]interface{}{
			"title":                   idea.Title,
			"description":             idea.Description,
			"status":                  idea.Status,
			"category":                idea.Category,
			"discussion_period":       idea.DiscussionPeriod,
			"discussion_started_at":   idea.DiscussionStartedAt,
			"discussion_ends_at":      idea.DiscussionEndsAt,
			"proposed_execution_date": idea.ProposedExecutionDate,
			"version":                 gorm.Expr("version + 1"),
			"updated_at":              now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrVersionConflict
	}

	idea.Version++
	idea.UpdatedAt = now
	return nil
}

// Delete removes an idea; comments, votes and the decision cascade in the schema
func (r *ideaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Idea{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves ideas with filters and pagination
func (r *ideaRepository) List(ctx context.Context, filters repositories.IdeaFilters) ([]*entities.Idea, int64, error) {
	var ideas []*entities.Idea
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Idea{}).Preload("Creator")

	// Apply filters
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", searchPattern, searchPattern)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply sorting
	sortBy, ok := ideaSortColumns[filters.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Apply pagination
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&ideas).Error
	return ideas, total, err
}

// FindExpiredDiscussions returns under_review ideas whose discussion ended before now
func (r *ideaRepository) FindExpiredDiscussions(ctx context.Context, now time.Time, limit int) ([]*entities.Idea, error) {
	var ideas []*entities.Idea
	query := r.db.WithContext(ctx).
		Where("status = ? AND discussion_ends_at IS NOT NULL AND discussion_ends_at <= ?", entities.IdeaStatusUnderReview, now).
		Order("discussion_ends_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&ideas).Error
	return ideas, err
}

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("idea_id = ?", ideaID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// Delete removes a comment; replies cascade through parent_id
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Comment{}, "id = ?", id).Error
}

// voteRepository implements the VoteRepository interface
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) repositories.VoteRepository {
	return &voteRepository{db: db}
}

// Upsert inserts or replaces the vote of (idea, user)
func (r *voteRepository) Upsert(ctx context.Context, vote *entities.Vote) error {
	vote.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idea_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(vote).Error
}

func (r *voteRepository) FindByIdeaAndUser(ctx context.Context, ideaID, userID uuid.UUID) (*entities.Vote, error) {
	var vote entities.Vote
	if err := r.db.WithContext(ctx).Where("idea_id = ? AND user_id = ?", ideaID, userID).First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	err := r.db.WithContext(ctx).
		Preload("Voter").
		Where("idea_id = ?", ideaID).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}

func (r *voteRepository) Delete(ctx context.Context, ideaID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("idea_id = ? AND user_id = ?", ideaID, userID).Delete(&entities.Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// decisionRepository implements the DecisionRepository interface
type decisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *gorm.DB) repositories.DecisionRepository {
	return &decisionRepository{db: db}
}

func (r *decisionRepository) FindByIdea(ctx context.Context, ideaID uuid.UUID) (*entities.Decision, error) {
	var decision entities.Decision
	if err := r.db.WithContext(ctx).Where("idea_id = ?", ideaID).First(&decision).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

// CreateWithIdeaStatus inserts the decision and the idea status change atomically
func (r *decisionRepository) CreateWithIdeaStatus(ctx context.Context, decision *entities.Decision, idea *entities.Idea) error {
	version := idea.Version
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(decision).Error; err != nil {
			return err
		}
		return updateIdea(tx, idea)
	})
	if err != nil {
		// the in-memory bump must not survive a rollback
		idea.Version = version
	}
	return err
}

// DeleteWithIdeaStatus removes the decision and writes the reverted idea atomically
func (r *decisionRepository) DeleteWithIdeaStatus(ctx context.Context, idea *entities.Idea) error {
	version := idea.Version
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("idea_id = ?", idea.ID).Delete(&entities.Decision{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return updateIdea(tx, idea)
	})
	if err != nil {
		idea.Version = version
	}
	return err
}
