package actors

import (
	stdctx "context"
	"log"
	"time"

	"driftwood/internal/database"
	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// DefaultLatestPostLimit caps per-category recency queries.
const DefaultLatestPostLimit = 5

// Message types for Post operations
type (
	CreatePostMsg struct {
		Title     string                `json:"title"`
		Content   string                `json:"content"`
		Category  string                `json:"category"`
		FileURL   string                `json:"fileUrl,omitempty"`
		FileName  string                `json:"fileName,omitempty"`
		Author    models.AuthorSnapshot `json:"author"`
		CreatedAt time.Time             `json:"createdAt,omitempty"`
	}

	GetPostMsg struct {
		PostID uuid.UUID `json:"postId"`
	}

	// GetPostsByCategoryMsg with an empty category returns every post.
	GetPostsByCategoryMsg struct {
		Category string `json:"category"`
	}

	GetLatestPostsMsg struct {
		Category string `json:"category"`
		Limit    int    `json:"limit"`
	}

	EditPostMsg struct {
		PostID    uuid.UUID `json:"postId"`
		Title     string    `json:"title"`
		Content   string    `json:"content"`
		EditorUID uuid.UUID `json:"editorUid"`
	}

	DeletePostMsg struct {
		PostID       uuid.UUID `json:"postId"`
		RequesterUID uuid.UUID `json:"requesterUid"`
		IsAdmin      bool      `json:"isAdmin"`
	}

	GetPostCountMsg struct{}
)

// PostDeleted is returned for a successful DeletePostMsg.
type PostDeleted struct {
	PostID uuid.UUID `json:"postId"`
}

// PostActor manages post operations against the document store.
type PostActor struct {
	db      database.DBAdapter
	metrics *utils.MetricsCollector
}

func NewPostActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{
		db:      db,
		metrics: metrics,
	}
}

func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("PostActor started")

	case *actor.Stopping:
		log.Printf("PostActor stopping")

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)

	case *GetPostMsg:
		a.handleGetPost(context, msg)

	case *GetPostsByCategoryMsg:
		a.handleGetPostsByCategory(context, msg)

	case *GetLatestPostsMsg:
		a.handleGetLatestPosts(context, msg)

	case *EditPostMsg:
		a.handleEditPost(context, msg)

	case *DeletePostMsg:
		a.handleDeletePost(context, msg)

	case *GetPostCountMsg:
		a.handleGetCount(context)

	default:
		log.Printf("PostActor: Unknown message type %T", msg)
	}
}

func (a *PostActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	if msg.Title == "" || msg.Content == "" || msg.Category == "" {
		context.Respond(utils.NewValidationError("Title, content and category are required"))
		return
	}
	if msg.Author.UID == uuid.Nil {
		context.Respond(utils.NewValidationError("Author snapshot is required"))
		return
	}

	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	post := &models.Post{
		ID:        uuid.New(),
		Title:     msg.Title,
		Content:   msg.Content,
		Category:  msg.Category,
		FileURL:   msg.FileURL,
		FileName:  msg.FileName,
		Author:    msg.Author,
		CreatedAt: createdAt,
	}

	ctx := stdctx.Background()
	if err := a.db.SavePost(ctx, post); err != nil {
		context.Respond(utils.NewDatabaseError("create post", err))
		return
	}

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(post)
}

func (a *PostActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	ctx := stdctx.Background()

	post, err := a.db.GetPost(ctx, msg.PostID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get post", err))
		return
	}

	context.Respond(post)
}

// handleGetPostsByCategory responds with the matching posts, or every
// post when the category is empty. A store failure logs and yields an
// empty list.
func (a *PostActor) handleGetPostsByCategory(context actor.Context, msg *GetPostsByCategoryMsg) {
	ctx := stdctx.Background()

	posts, err := a.db.GetPostsByCategory(ctx, msg.Category)
	if err != nil {
		log.Printf("PostActor: failed to list posts for category %q: %v", msg.Category, err)
		context.Respond([]*models.Post{})
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	context.Respond(posts)
}

func (a *PostActor) handleGetLatestPosts(context actor.Context, msg *GetLatestPostsMsg) {
	ctx := stdctx.Background()

	limit := msg.Limit
	if msg.Category != "" && limit <= 0 {
		limit = DefaultLatestPostLimit
	}

	posts, err := a.db.GetLatestPosts(ctx, msg.Category, limit)
	if err != nil {
		log.Printf("PostActor: failed to list latest posts: %v", err)
		context.Respond([]*models.Post{})
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	context.Respond(posts)
}

// handleEditPost allows only the matching author to overwrite title and
// content, and stamps editedAt.
func (a *PostActor) handleEditPost(context actor.Context, msg *EditPostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if msg.Title == "" || msg.Content == "" {
		context.Respond(utils.NewValidationError("Title and content are required"))
		return
	}

	post, err := a.db.GetPost(ctx, msg.PostID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get post", err))
		return
	}

	if post.Author.UID != msg.EditorUID {
		context.Respond(utils.NewForbiddenError("only the author can edit this post"))
		return
	}

	editedAt := time.Now()
	if err := a.db.UpdatePostContent(ctx, msg.PostID, msg.Title, msg.Content, editedAt); err != nil {
		context.Respond(utils.NewDatabaseError("update post", err))
		return
	}

	post.Title = msg.Title
	post.Content = msg.Content
	post.EditedAt = &editedAt

	a.metrics.AddOperationLatency("edit_post", time.Since(startTime))
	context.Respond(post)
}

// handleDeletePost allows the author or the administrator to delete.
func (a *PostActor) handleDeletePost(context actor.Context, msg *DeletePostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	post, err := a.db.GetPost(ctx, msg.PostID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get post", err))
		return
	}

	if post.Author.UID != msg.RequesterUID && !msg.IsAdmin {
		context.Respond(utils.NewForbiddenError("only the author or the administrator can delete this post"))
		return
	}

	if err := a.db.DeletePost(ctx, msg.PostID); err != nil {
		context.Respond(utils.NewDatabaseError("delete post", err))
		return
	}

	a.metrics.AddOperationLatency("delete_post", time.Since(startTime))
	context.Respond(&PostDeleted{PostID: msg.PostID})
}

func (a *PostActor) handleGetCount(context actor.Context) {
	ctx := stdctx.Background()

	posts, err := a.db.GetPostsByCategory(ctx, "")
	if err != nil {
		context.Respond(0)
		return
	}
	context.Respond(len(posts))
}
