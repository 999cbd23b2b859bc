package entities

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a discussion message on an idea, threaded through ParentID
type Comment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IdeaID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"idea_id"`
	ParentID       *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	Author         *User      `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
	AttachmentURL  *string    `gorm:"type:text" json:"attachment_url,omitempty"`
	AttachmentType *string    `gorm:"type:varchar(100)" json:"attachment_type,omitempty"`
	AttachmentName *string    `gorm:"type:varchar(255)" json:"attachment_name,omitempty"`
	AttachmentKey  *string    `gorm:"type:varchar(500)" json:"-"`
	CreatedAt      time.Time  `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// HasAttachment reports whether a file is linked to the comment
func (c *Comment) HasAttachment() bool {
	return c.AttachmentKey != nil || (c.AttachmentURL != nil && *c.AttachmentURL != "")
}

// IsReply reports whether the comment answers another comment
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CommentNode is a comment with its replies
type CommentNode struct {
	*Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree nests a flat, creation-ordered list. Replies whose parent is not in the
// list are promoted to roots so nothing is dropped.
func BuildCommentTree(comments []*Comment) []*CommentNode {
	nodes := make(map[uuid.UUID]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
