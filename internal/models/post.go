package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Category  string         `json:"category"` // denormalized name copy, not a foreign key
	FileURL   string         `json:"fileUrl,omitempty"`
	FileName  string         `json:"fileName,omitempty"`
	Author    AuthorSnapshot `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	EditedAt  *time.Time     `json:"editedAt,omitempty"`
}
