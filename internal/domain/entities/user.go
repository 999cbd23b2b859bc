package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the local profile of an account owned by the hosted auth service.
// Rows are upserted from verified tokens, the ID is the token subject.
type User struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Email      string         `json:"email" gorm:"type:varchar(255);index"`
	FullName   string         `json:"full_name" gorm:"type:varchar(255)"`
	Role       UserRole       `json:"role" gorm:"type:varchar(20);default:'member';not null"`
	Settings   datatypes.JSON `json:"settings,omitempty" gorm:"type:jsonb;default:'{}'"`
	LastSeenAt *time.Time     `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// ParseUserRole maps a token role onto an application role; anything unknown is a member
func ParseUserRole(s string) UserRole {
	if UserRole(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// DisplayName returns the full name, falling back to the email
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
