// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"driftwood/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DBAdapter defines the document-store operations the actors depend on.
// MongoDB implements it for production; tests substitute an in-memory
// fake.
type DBAdapter interface {
	// Connection
	Close(ctx context.Context) error

	// User (credential record) methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Profile (mirrored document) methods
	SaveProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, uid uuid.UUID) (*models.Profile, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	IsNicknameTaken(ctx context.Context, nickname string) (bool, error)
	DeleteProfile(ctx context.Context, uid uuid.UUID) error

	// Referral code methods
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	SaveReferralCode(ctx context.Context, code string) error

	// Category methods
	SaveCategory(ctx context.Context, category *models.Category) error
	GetCategories(ctx context.Context) ([]*models.Category, error)
	DeleteCategoriesByName(ctx context.Context, name string) (int64, error)

	// Post methods
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]*models.Post, error)
	GetLatestPosts(ctx context.Context, category string, limit int) ([]*models.Post, error)
	UpdatePostContent(ctx context.Context, id uuid.UUID, title, content string, editedAt time.Time) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	DeletePostsByCategory(ctx context.Context, category string) (int64, error)

	// Comment methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, postID, commentID uuid.UUID) (*models.Comment, error)
	GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	UpdateCommentContent(ctx context.Context, postID, commentID uuid.UUID, content string, editedAt time.Time) error
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error
}

type MongoDB struct {
	Client        *mongo.Client
	Users         *mongo.Collection
	Profiles      *mongo.Collection
	Categories    *mongo.Collection
	Posts         *mongo.Collection
	Comments      *mongo.Collection
	ReferralCodes *mongo.Collection
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	db := client.Database(dbName)
	return &MongoDB{
		Client:        client,
		Users:         db.Collection("users"),
		Profiles:      db.Collection("profiles"),
		Categories:    db.Collection("categories"),
		Posts:         db.Collection("posts"),
		Comments:      db.Collection("comments"),
		ReferralCodes: db.Collection("referral_codes"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
