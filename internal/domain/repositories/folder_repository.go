package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/idea-hub/internal/domain/entities"
)

// FolderRepository defines the interface for meeting folder data access
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *entities.MeetingFolder) error

	// FindByID retrieves a folder with its members
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingFolder, error)

	// ListForUser returns folders owned by or shared with userID; nil returns all
	ListForUser(ctx context.Context, userID *uuid.UUID) ([]*entities.MeetingFolder, error)

	Update(ctx context.Context, folder *entities.MeetingFolder) error

	// Delete removes the folder and its members. Meetings filed in it are moved out.
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *entities.FolderMember) error
	FindMember(ctx context.Context, folderID, userID uuid.UUID) (*entities.FolderMember, error)
	UpdateMember(ctx context.Context, member *entities.FolderMember) error
	RemoveMember(ctx context.Context, folderID, userID uuid.UUID) error
}
