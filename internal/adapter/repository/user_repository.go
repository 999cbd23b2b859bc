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

// userRepository implements the user repository interface using GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

// Upsert creates the profile or refreshes it from the latest token
func (r *userRepository) Upsert(ctx context.Context, user *entities.User) error {
	now := time.Now()
	user.LastSeenAt = &now
	user.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "last_seen_at", "updated_at"}),
		}).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users that exist among ids
func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}
	var users []*entities.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Search matches name or email for the participant picker
func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]*entities.User, error) {
	var users []*entities.User

	q := r.db.WithContext(ctx).Model(&entities.User{})
	if query = strings.TrimSpace(query); query != "" {
		pattern := fmt.Sprintf("%%%s%%", query)
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Order("full_name ASC, email ASC").Find(&users).Error
	return users, err
}
