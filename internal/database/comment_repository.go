// internal/database/comment_repository.go
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

// CommentDocument represents the MongoDB schema for a comment. Comments
// live in a single collection filtered by postid, the document-store
// rendering of a per-post child collection.
type CommentDocument struct {
	ID             string     `bson:"_id"`
	PostID         string     `bson:"postid"`
	Content        string     `bson:"content"`
	AuthorUID      string     `bson:"authoruid"`
	AuthorNickname string     `bson:"authornickname"`
	AuthorEmail    string     `bson:"authoremail"`
	CreatedAt      time.Time  `bson:"createdat"`
	EditedAt       *time.Time `bson:"editedat,omitempty"`
}

func commentToDocument(comment *models.Comment) *CommentDocument {
	return &CommentDocument{
		ID:             comment.ID.String(),
		PostID:         comment.PostID.String(),
		Content:        comment.Content,
		AuthorUID:      comment.Author.UID.String(),
		AuthorNickname: comment.Author.Nickname,
		AuthorEmail:    comment.Author.Email,
		CreatedAt:      comment.CreatedAt,
		EditedAt:       comment.EditedAt,
	}
}

func documentToComment(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %v", err)
	}

	authorUID, err := uuid.Parse(doc.AuthorUID)
	if err != nil {
		return nil, fmt.Errorf("invalid author UID: %v", err)
	}

	nickname := doc.AuthorNickname
	if nickname == "" {
		nickname = fallbackNickname
	}

	return &models.Comment{
		ID:      id,
		PostID:  postID,
		Content: doc.Content,
		Author: models.AuthorSnapshot{
			UID:      authorUID,
			Nickname: nickname,
			Email:    doc.AuthorEmail,
		},
		CreatedAt: doc.CreatedAt,
		EditedAt:  doc.EditedAt,
	}, nil
}

// SaveComment creates or updates a comment document.
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := commentToDocument(comment)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": comment.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Comments.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetComment retrieves a comment scoped to its owning post.
func (m *MongoDB) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	filter := bson.M{"_id": commentID.String(), "postid": postID.String()}
	err := m.Comments.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewCommentNotFoundError(commentID.String())
	}
	if err != nil {
		return nil, err
	}

	return documentToComment(&doc)
}

// GetPostComments retrieves the comments for a post, oldest first.
func (m *MongoDB) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: 1}})

	cursor, err := m.Comments.Find(ctx, bson.M{"postid": postID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %v", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("Error decoding comment document: %v", err)
			continue
		}

		comment, err := documentToComment(&doc)
		if err != nil {
			log.Printf("Error converting document to model: %v", err)
			continue
		}
		comments = append(comments, comment)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}

// UpdateCommentContent overwrites the content and stamps editedat.
func (m *MongoDB) UpdateCommentContent(ctx context.Context, postID, commentID uuid.UUID, content string, editedAt time.Time) error {
	filter := bson.M{"_id": commentID.String(), "postid": postID.String()}
	update := bson.M{"$set": bson.M{
		"content":  content,
		"editedat": editedAt,
	}}

	result, err := m.Comments.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewCommentNotFoundError(commentID.String())
	}
	return nil
}

// DeleteComment removes a comment scoped to its owning post.
func (m *MongoDB) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	filter := bson.M{"_id": commentID.String(), "postid": postID.String()}

	result, err := m.Comments.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewCommentNotFoundError(commentID.String())
	}
	return nil
}
