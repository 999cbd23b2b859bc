package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/cache"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
	"github.com/johnquangdev/idea-hub/pkg/jwt"
)

// profileRefresh bounds how often one account's profile row is rewritten
const profileRefresh = 5 * time.Minute

// TokenVerifier validates access tokens
type TokenVerifier interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Service turns access tokens into principals and keeps the local profile in sync
type Service struct {
	tokens TokenVerifier
	users  repositories.UserRepository
	seen   *cache.MemoryStore
	logger *zap.Logger
}

// NewService creates a new auth service
func NewService(tokens TokenVerifier, users repositories.UserRepository, seen *cache.MemoryStore, logger *zap.Logger) *Service {
	return &Service{
		tokens: tokens,
		users:  users,
		seen:   seen,
		logger: logger,
	}
}

// Authenticate verifies the token and returns the caller
func (s *Service) Authenticate(ctx context.Context, token string) (Principal, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ucerrors.ErrTokenExpired
		}
		return Principal{}, ucerrors.ErrTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return Principal{}, ucerrors.ErrTokenInvalid
	}

	p := Principal{
		UserID:   userID,
		Email:    claims.Email,
		FullName: claims.UserMetadata.FullName,
		Role:     entities.ParseUserRole(claims.AppRole()),
	}

	s.syncProfile(ctx, p)
	return p, nil
}

// syncProfile upserts the profile row at most once per refresh window.
// Failures are logged only, the token is already trusted.
func (s *Service) syncProfile(ctx context.Context, p Principal) {
	key := "profile:" + p.UserID.String()
	if s.seen != nil && !s.seen.SetIfAbsent(key, "1", profileRefresh) {
		return
	}

	if err := s.users.Upsert(ctx, p.User()); err != nil {
		if s.seen != nil {
			_ = s.seen.Delete(ctx, key)
		}
		s.logger.Warn("⚠️ Failed to sync user profile",
			zap.String("user_id", p.UserID.String()),
			zap.Error(err),
		)
	}
}

// SearchUsers lists profiles matching query for pickers
func (s *Service) SearchUsers(ctx context.Context, query string, limit int) ([]*entities.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, err := s.users.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// Me returns the caller's stored profile, falling back to the token data
func (s *Service) Me(ctx context.Context, p Principal) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, p.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p.User(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
