package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/repositories"
)

// folderRepository implements the FolderRepository interface
type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *gorm.DB) repositories.FolderRepository {
	return &folderRepository{db: db}
}

// Create creates a new folder
func (r *folderRepository) Create(ctx context.Context, folder *entities.MeetingFolder) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(folder).Error
}

// FindByID retrieves a folder with its members
func (r *folderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingFolder, error) {
	var folder entities.MeetingFolder
	err := r.db.WithContext(ctx).
		Preload("Members.User").
		Where("id = ?", id).
		First(&folder).Error

	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListForUser returns folders owned by or shared with userID; nil returns all
func (r *folderRepository) ListForUser(ctx context.Context, userID *uuid.UUID) ([]*entities.MeetingFolder, error) {
	var folders []*entities.MeetingFolder

	query := r.db.WithContext(ctx).Preload("Members.User")
	if userID != nil {
		query = query.Where("owner_id = ? OR id IN (SELECT folder_id FROM meeting_folder_members WHERE user_id = ?)", *userID, *userID)
	}

	err := query.Order("name ASC").Find(&folders).Error
	return folders, err
}

// Update updates the folder fields, members are managed separately
func (r *folderRepository) Update(ctx context.Context, folder *entities.MeetingFolder) error {
	folder.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(folder).Error
}

// Delete moves the folder's meetings out, then removes members and the folder
func (r *folderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Meeting{}).
			Where("folder_id = ?", id).
			UpdateColumn("folder_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("folder_id = ?", id).Delete(&entities.FolderMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.MeetingFolder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddMember creates an ACL entry
func (r *folderRepository) AddMember(ctx context.Context, member *entities.FolderMember) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

// FindMember retrieves the ACL entry of a user
func (r *folderRepository) FindMember(ctx context.Context, folderID, userID uuid.UUID) (*entities.FolderMember, error) {
	var member entities.FolderMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("folder_id = ? AND user_id = ?", folderID, userID).
		First(&member).Error

	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember changes the role of an ACL entry
func (r *folderRepository) UpdateMember(ctx context.Context, member *entities.FolderMember) error {
	return r.db.WithContext(ctx).
		Model(&entities.FolderMember{}).
		Where("id = ?", member.ID).
		Update("role", member.Role).Error
}

// RemoveMember deletes the ACL entry of a user
func (r *folderRepository) RemoveMember(ctx context.Context, folderID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("folder_id = ? AND user_id = ?", folderID, userID).
		Delete(&entities.FolderMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
