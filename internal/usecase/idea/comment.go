package idea

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/idea-hub/internal/domain/entities"
	"github.com/johnquangdev/idea-hub/internal/domain/events"
	"github.com/johnquangdev/idea-hub/internal/infrastructure/storage"
	"github.com/johnquangdev/idea-hub/internal/usecase/auth"
	ucerrors "github.com/johnquangdev/idea-hub/internal/usecase/errors"
)

// openForDiscussion returns why the idea does not accept comments or votes right now
func (s *IdeaService) openForDiscussion(idea *entities.Idea) error {
	if idea.Status == entities.IdeaStatusDraft {
		return ucerrors.ErrDiscussionNotStarted
	}
	if !idea.IsDiscussionOpen(s.now()) {
		return ucerrors.ErrDiscussionClosed
	}
	return nil
}

// AddComment posts a comment or a reply while the discussion is open
func (s *IdeaService) AddComment(ctx context.Context, input AddCommentInput) (*entities.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && input.Attachment == nil {
		return nil, ucerrors.ErrInvalidInput
	}

	idea, err := s.findIdea(ctx, input.IdeaID)
	if err != nil {
		return nil, err
	}
	if err := s.openForDiscussion(idea); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ucerrors.ErrInvalidCommentParent
			}
			return nil, fmt.Errorf("failed to get parent comment: %w", err)
		}
		if parent.IdeaID != idea.ID {
			return nil, ucerrors.ErrInvalidCommentParent
		}
	}

	comment := &entities.Comment{
		IdeaID:    idea.ID,
		ParentID:  input.ParentID,
		Content:   content,
		CreatedBy: input.Principal.UserID,
	}

	if input.Attachment != nil {
		if err := s.uploadAttachment(ctx, idea.ID, input.Attachment, comment); err != nil {
			return nil, err
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if comment.AttachmentKey != nil {
			if rmErr := s.attachments.RemoveFile(ctx, *comment.AttachmentKey); rmErr != nil {
				s.logger.Warn("⚠️ Failed to remove orphaned attachment", zap.Error(rmErr))
			}
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = input.Principal.User()

	s.publisher.Publish(ctx, events.ForIdea(events.CommentCreated, idea.ID, idea.Version, comment))
	return comment, nil
}

func (s *IdeaService) uploadAttachment(ctx context.Context, ideaID uuid.UUID, file *AttachmentInput, comment *entities.Comment) error {
	if s.attachments == nil {
		return ucerrors.ErrStorageDisabled
	}
	if file.Reader == nil || file.Size <= 0 {
		return ucerrors.ErrInvalidInput
	}
	if s.maxUploadBytes > 0 && file.Size > s.maxUploadBytes {
		return ucerrors.ErrAttachmentTooLarge
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := storage.AttachmentKey(ideaID, file.Filename)

	// never read past the declared size
	if err := s.attachments.UploadFile(ctx, key, io.LimitReader(file.Reader, file.Size), file.Size, contentType); err != nil {
		s.logger.Error("❌ Failed to upload attachment",
			zap.String("idea_id", ideaID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ucerrors.ErrStorageFailed, err)
	}

	url := s.attachments.PublicFileURL(key)
	name := path.Base(strings.ReplaceAll(file.Filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	comment.AttachmentKey = &key
	comment.AttachmentURL = &url
	comment.AttachmentType = &contentType
	comment.AttachmentName = &name
	return nil
}

// ListComments returns the comments of an idea in creation order;
// entities.BuildCommentTree nests them
func (s *IdeaService) ListComments(ctx context.Context, ideaID uuid.UUID) ([]*entities.Comment, error) {
	if _, err := s.findIdea(ctx, ideaID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment and its replies. Authors delete their own, admins any.
func (s *IdeaService) DeleteComment(ctx context.Context, p auth.Principal, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment.CreatedBy != p.UserID && !p.IsAdmin() {
		return ucerrors.ErrForbidden
	}

	// replies cascade in the database, their files are collected here
	var keys []string
	if s.attachments != nil {
		all, err := s.commentRepo.ListByIdea(ctx, comment.IdeaID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		for _, c := range subtree(all, comment.ID) {
			if c.AttachmentKey != nil {
				keys = append(keys, *c.AttachmentKey)
			}
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ucerrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	for _, key := range keys {
		if err := s.attachments.RemoveFile(ctx, key); err != nil {
			s.logger.Warn("⚠️ Failed to remove attachment", zap.String("key", key), zap.Error(err))
		}
	}

	s.publisher.Publish(ctx, events.ForIdea(events.CommentDeleted, comment.IdeaID, 0, map[string]string{
		"comment_id": commentID.String(),
	}))
	return nil
}

// subtree returns root and every reply below it
func subtree(comments []*entities.Comment, root uuid.UUID) []*entities.Comment {
	children := make(map[uuid.UUID][]*entities.Comment)
	var rootComment *entities.Comment
	for _, c := range comments {
		if c.ID == root {
			rootComment = c
		}
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}
	if rootComment == nil {
		return nil
	}

	out := []*entities.Comment{rootComment}
	seen := map[uuid.UUID]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, child := range children[out[i].ID] {
			if !seen[child.ID] {
				seen[child.ID] = true
				out = append(out, child)
			}
		}
	}
	return out
}
