package presenter

import (
	"encoding/json"

	userDTO "github.com/johnquangdev/idea-hub/internal/adapter/dto/user"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *userDTO.UserResponse {
	if u == nil {
		return nil
	}

	// Parse settings from JSON
	var settings map[string]interface{}
	if len(u.Settings) > 0 {
		_ = json.Unmarshal(u.Settings, &settings)
	}

	return &userDTO.UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		IsAdmin:    u.Role == entities.RoleAdmin,
		Settings:   settings,
		LastSeenAt: u.LastSeenAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ToUserResponses converts a list of users
func ToUserResponses(users []*entities.User) []*userDTO.UserResponse {
	out := make([]*userDTO.UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}

// ToUserSummary returns the short form of a loaded user, or nil
func ToUserSummary(u *entities.User) *userDTO.UserSummary {
	if u == nil {
		return nil
	}
	return &userDTO.UserSummary{
		ID:    u.ID.String(),
		Name:  u.DisplayName(),
		Email: u.Email,
	}
}
