package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// folderWithAccess loads a folder and checks allowed on the caller's access to it
func (s *MeetingService) folderWithAccess(ctx context.Context, p auth.Principal, folderID uuid.UUID, allowed func(entities.FolderAccess) bool) (*entities.MeetingFolder, error) {
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	if !allowed(folder.AccessFor(p.UserID, p.IsAdmin())) {
		return nil, ucerrors.ErrFolderAccessDenied
	}
	return folder, nil
}

// CreateFolder creates a folder owned by the caller
func (s *MeetingService) CreateFolder(ctx context.Context, input CreateFolderInput) (*entities.MeetingFolder, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ucerrors.ErrInvalidInput
	}

	folder := &entities.MeetingFolder{
		Name:        name,
		Description: trimmed(input.Description),
		Color:       trimmed(input.Color),
		OwnerID:     input.Principal.UserID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	s.logger.Info("✅ Folder created",
		zap.String("folder_id", folder.ID.String()),
		zap.String("owner_id", folder.OwnerID.String()),
	)
	return folder, nil
}

// GetFolder returns a folder the caller can read
func (s *MeetingService) GetFolder(ctx context.Context, p auth.Principal, folderID uuid.UUID) (*entities.MeetingFolder, error) {
	return s.folderWithAccess(ctx, p, folderID, entities.FolderAccess.CanRead)
}

// ListFolders lists folders owned by or shared with the caller; admins see all
func (s *MeetingService) ListFolders(ctx context.Context, p auth.Principal) ([]*entities.MeetingFolder, error) {
	folders, err := s.folderRepo.ListForUser(ctx, visibleTo(p))
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// UpdateFolder renames or recolours a folder
func (s *MeetingService) UpdateFolder(ctx context.Context, input UpdateFolderInput) (*entities.MeetingFolder, error) {
	folder, err := s.folderWithAccess(ctx, input.Principal, input.FolderID, entities.FolderAccess.CanManage)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ucerrors.ErrInvalidInput
		}
		folder.Name = name
	}
	if input.Description != nil {
		folder.Description = trimmed(input.Description)
	}
	if input.Color != nil {
		folder.Color = trimmed(input.Color)
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return folder, nil
}

// DeleteFolder removes an empty folder. With force its meetings are moved out first.
func (s *MeetingService) DeleteFolder(ctx context.Context, p auth.Principal, folderID uuid.UUID, force bool) error {
	folder, err := s.folderWithAccess(ctx, p, folderID, entities.FolderAccess.CanManage)
	if err != nil {
		return err
	}

	if !force {
		count, err := s.meetingRepo.CountByFolder(ctx, folder.ID)
		if err != nil {
			return fmt.Errorf("failed to count folder meetings: %w", err)
		}
		if count > 0 {
			return ucerrors.ErrFolderNotEmpty
		}
	}

	if err := s.folderRepo.Delete(ctx, folder.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrFolderNotFound
		}
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	s.logger.Info("🗑️ Folder deleted",
		zap.String("folder_id", folder.ID.String()),
		zap.Bool("force", force),
	)
	return nil
}

// AddFolderMember shares a folder with a user
func (s *MeetingService) AddFolderMember(ctx context.Context, input FolderMemberInput) (*entities.FolderMember, error) {
	role := input.Role
	if role == "" {
		role = entities.FolderRoleViewer
	}
	if !role.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}

	folder, err := s.folderWithAccess(ctx, input.Principal, input.FolderID, entities.FolderAccess.CanManage)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID == input.UserID {
		return nil, ucerrors.ErrCannotShareWithOwner
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	member := &entities.FolderMember{
		FolderID: folder.ID,
		UserID:   user.ID,
		User:     user,
		Role:     role,
	}
	if err := s.folderRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ucerrors.ErrFolderMemberExists
		}
		return nil, fmt.Errorf("failed to add folder member: %w", err)
	}

	s.logger.Info("✅ Folder shared",
		zap.String("folder_id", folder.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)
	return member, nil
}

// UpdateFolderMemberRole switches a member between viewer and editor
func (s *MeetingService) UpdateFolderMemberRole(ctx context.Context, input FolderMemberInput) (*entities.FolderMember, error) {
	if !input.Role.IsValid() {
		return nil, ucerrors.ErrInvalidInput
	}
	folder, err := s.folderWithAccess(ctx, input.Principal, input.FolderID, entities.FolderAccess.CanManage)
	if err != nil {
		return nil, err
	}

	member, err := s.folderRepo.FindMember(ctx, folder.ID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.ErrFolderMemberNotFound
		}
		return nil, fmt.Errorf("failed to get folder member: %w", err)
	}

	member.Role = input.Role
	if err := s.folderRepo.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update folder member: %w", err)
	}
	return member, nil
}

// RemoveFolderMember revokes a user's access to a folder
func (s *MeetingService) RemoveFolderMember(ctx context.Context, p auth.Principal, folderID, userID uuid.UUID) error {
	folder, err := s.folderWithAccess(ctx, p, folderID, entities.FolderAccess.CanManage)
	if err != nil {
		return err
	}
	if err := s.folderRepo.RemoveMember(ctx, folder.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrFolderMemberNotFound
		}
		return fmt.Errorf("failed to remove folder member: %w", err)
	}

	s.logger.Info("🔄 Folder member removed",
		zap.String("folder_id", folder.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}
