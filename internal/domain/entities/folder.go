package entities

import (
	"time"

	"github.com/google/uuid"
)

// FolderRole is a member's permission inside a folder
type FolderRole string

const (
	FolderRoleViewer FolderRole = "viewer"
	FolderRoleEditor FolderRole = "editor"
)

// IsValid checks if the folder role is known
func (r FolderRole) IsValid() bool {
	return r == FolderRoleViewer || r == FolderRoleEditor
}

// FolderAccess is the effective permission of a user on a folder, ordered by strength
type FolderAccess int

const (
	FolderAccessNone FolderAccess = iota
	FolderAccessViewer
	FolderAccessEditor
	FolderAccessOwner
)

// CanRead reports whether the access allows listing meetings
func (a FolderAccess) CanRead() bool { return a >= FolderAccessViewer }

// CanWrite reports whether the access allows changing meetings
func (a FolderAccess) CanWrite() bool { return a >= FolderAccessEditor }

// CanManage reports whether the access allows changing the folder and its members
func (a FolderAccess) CanManage() bool { return a >= FolderAccessOwner }

// MeetingFolder groups meetings under its own membership list
type MeetingFolder struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Color       *string         `gorm:"type:varchar(20)" json:"color,omitempty"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Members     []*FolderMember `gorm:"foreignKey:FolderID" json:"members,omitempty"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingFolder
func (MeetingFolder) TableName() string {
	return "meeting_folders"
}

// FolderMember is one ACL entry
type FolderMember struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FolderID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_folder_members_folder_user" json:"folder_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_folder_members_folder_user" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      FolderRole `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	CreatedAt time.Time  `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for FolderMember
func (FolderMember) TableName() string {
	return "meeting_folder_members"
}

// AccessFor computes the permission of userID. Admins are treated as owners.
func (f *MeetingFolder) AccessFor(userID uuid.UUID, isAdmin bool) FolderAccess {
	if isAdmin || f.OwnerID == userID {
		return FolderAccessOwner
	}
	for _, m := range f.Members {
		if m.UserID != userID {
			continue
		}
		if m.Role == FolderRoleEditor {
			return FolderAccessEditor
		}
		return FolderAccessViewer
	}
	return FolderAccessNone
}
