package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// Principal is the verified identity of the caller, passed explicitly into services
type Principal struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	Role     entities.UserRole
}

// IsAdmin reports whether the caller may use administrative operations
func (p Principal) IsAdmin() bool {
	return p.Role == entities.RoleAdmin
}

// DisplayName returns the name shown next to the caller's content
func (p Principal) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}

// User converts the principal into the locally stored profile
func (p Principal) User() *entities.User {
	return &entities.User{
		ID:       p.UserID,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     p.Role,
	}
}

type principalKey struct{}

// WithPrincipal attaches p to ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by WithPrincipal
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
