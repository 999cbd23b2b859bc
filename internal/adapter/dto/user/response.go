package user

import "time"

// UserResponse represents user information in responses
type UserResponse struct {
	ID         string                 `json:"id"`
	Email      string                 `json:"email"`
	FullName   string                 `json:"full_name"`
	Role       string                 `json:"role"`
	IsAdmin    bool                   `json:"is_admin"`
	Settings   map[string]interface{} `json:"settings,omitempty"`
	LastSeenAt *time.Time             `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// UserSummary is the short form embedded next to authored content
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// SearchUsersRequest represents query parameters for the user picker
type SearchUsersRequest struct {
	Query string `query:"q"`
	Limit int    `query:"limit" validate:"min=0,max=50"`
}
