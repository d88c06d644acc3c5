package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a single post. Only the matching author may edit
// or delete it; there is no admin override for comments.
type Comment struct {
	ID        uuid.UUID      `json:"id"`
	PostID    uuid.UUID      `json:"postId"`
	Content   string         `json:"content"`
	Author    AuthorSnapshot `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	EditedAt  *time.Time     `json:"editedAt,omitempty"`
}
