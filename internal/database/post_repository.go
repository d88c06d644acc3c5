// internal/database/post_repository.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Placeholder values patched in when a stored document is missing a
// field. Reads are lenient: a malformed post renders with fallbacks
// instead of failing the whole listing.
const (
	fallbackTitle    = "Untitled"
	fallbackNickname = "[unknown]"
	fallbackFileName = "downloaded_file"
)

// PostDocument represents the MongoDB schema for a post.
type PostDocument struct {
	ID             string     `bson:"_id"`
	Title          string     `bson:"title"`
	Content        string     `bson:"content"`
	Category       string     `bson:"category"`
	FileURL        string     `bson:"fileurl,omitempty"`
	FileName       string     `bson:"filename,omitempty"`
	AuthorUID      string     `bson:"authoruid"`
	AuthorNickname string     `bson:"authornickname"`
	AuthorEmail    string     `bson:"authoremail"`
	CreatedAt      time.Time  `bson:"createdat"`
	EditedAt       *time.Time `bson:"editedat,omitempty"`
}

func postToDocument(post *models.Post) *PostDocument {
	return &PostDocument{
		ID:             post.ID.String(),
		Title:          post.Title,
		Content:        post.Content,
		Category:       post.Category,
		FileURL:        post.FileURL,
		FileName:       post.FileName,
		AuthorUID:      post.Author.UID.String(),
		AuthorNickname: post.Author.Nickname,
		AuthorEmail:    post.Author.Email,
		CreatedAt:      post.CreatedAt,
		EditedAt:       post.EditedAt,
	}
}

// documentToPost converts a stored document, patching missing fields
// with fallback values rather than rejecting the record.
func documentToPost(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	// The author uid is the one field that cannot be defaulted away:
	// ownership checks depend on it.
	authorUID, err := uuid.Parse(doc.AuthorUID)
	if err != nil {
		return nil, fmt.Errorf("invalid author UID: %v", err)
	}

	title := doc.Title
	if title == "" {
		title = fallbackTitle
	}

	nickname := doc.AuthorNickname
	if nickname == "" {
		nickname = fallbackNickname
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	// An attachment URL without a stored name still needs a label for
	// the download link.
	fileName := doc.FileName
	if doc.FileURL != "" && fileName == "" {
		fileName = fallbackFileName
	}

	return &models.Post{
		ID:       id,
		Title:    title,
		Content:  doc.Content,
		Category: doc.Category,
		FileURL:  doc.FileURL,
		FileName: fileName,
		Author: models.AuthorSnapshot{
			UID:      authorUID,
			Nickname: nickname,
			Email:    doc.AuthorEmail,
		},
		CreatedAt: createdAt,
		EditedAt:  doc.EditedAt,
	}, nil
}

// SavePost creates or updates a post document.
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := postToDocument(post)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": post.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Posts.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewPostNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}

	return documentToPost(&doc)
}

// GetPostsByCategory retrieves all posts for a category name. An empty
// category returns every post.
func (m *MongoDB) GetPostsByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	filter := bson.M{}
	if category != "" {
		filter = bson.M{"category": category}
	}

	cursor, err := m.Posts.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	return m.decodePosts(ctx, cursor)
}

// GetLatestPosts retrieves posts ordered by descending creation time,
// optionally filtered by category, capped to limit.
func (m *MongoDB) GetLatestPosts(ctx context.Context, category string, limit int) ([]*models.Post, error) {
	filter := bson.M{}
	if category != "" {
		filter = bson.M{"category": category}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := m.Posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	return m.decodePosts(ctx, cursor)
}

func (m *MongoDB) decodePosts(ctx context.Context, cursor *mongo.Cursor) ([]*models.Post, error) {
	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding post document: %v", err)
			continue
		}

		post, err := documentToPost(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return posts, nil
}

// UpdatePostContent overwrites title and content and stamps editedat.
func (m *MongoDB) UpdatePostContent(ctx context.Context, id uuid.UUID, title, content string, editedAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"title":    title,
		"content":  content,
		"editedat": editedAt,
	}}

	result, err := m.Posts.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewPostNotFoundError(id.String())
	}
	return nil
}

// DeletePost removes a post by id.
func (m *MongoDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewPostNotFoundError(id.String())
	}
	return nil
}

// DeletePostsByCategory removes every post whose category field equals
// the name. First phase of the category cascade; not atomic with the
// category document deletion that follows.
func (m *MongoDB) DeletePostsByCategory(ctx context.Context, category string) (int64, error) {
	result, err := m.Posts.DeleteMany(ctx, bson.M{"category": category})
	if err != nil {
		return 0, err
	}

	log.Printf("Deleted %d posts in category %q", result.DeletedCount, category)
	return result.DeletedCount, nil
}
