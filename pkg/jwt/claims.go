package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the claims issued by the hosted auth service.
// The user id travels in the registered "sub" claim.
type Claims struct {
	Email        string       `json:"email"`
	Role         string       `json:"role,omitempty"`
	AppMetadata  AppMetadata  `json:"app_metadata"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// AppMetadata is the server-controlled part of the token
type AppMetadata struct {
	Role string `json:"role,omitempty"`
}

// UserMetadata is the profile part of the token
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
}

// AppRole returns the application role. app_metadata wins over the top-level claim,
// which the auth service often sets to a generic value such as "authenticated".
func (c *Claims) AppRole() string {
	if c.AppMetadata.Role != "" {
		return c.AppMetadata.Role
	}
	return c.Role
}
