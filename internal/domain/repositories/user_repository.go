package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	// Upsert creates the profile or refreshes email, name, role and last_seen_at
	Upsert(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByIDs returns the users that exist among ids
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error)

	// Search matches name or email; an empty query lists users by name
	Search(ctx context.Context, query string, limit int) ([]*entities.User, error)
}
