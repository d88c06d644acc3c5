package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"driftwood/internal/database"
	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for Comment operations
type (
	CreateCommentMsg struct {
		PostID  uuid.UUID             `json:"postId"`
		Content string                `json:"content"`
		Author  models.AuthorSnapshot `json:"author"`
	}

	GetPostCommentsMsg struct {
		PostID uuid.UUID `json:"postId"`
	}

	EditCommentMsg struct {
		PostID       uuid.UUID `json:"postId"`
		CommentID    uuid.UUID `json:"commentId"`
		RequesterUID uuid.UUID `json:"requesterUid"`
		Content      string    `json:"content"`
	}

	DeleteCommentMsg struct {
		PostID       uuid.UUID `json:"postId"`
		CommentID    uuid.UUID `json:"commentId"`
		RequesterUID uuid.UUID `json:"requesterUid"`
	}
)

// CommentDeleted is returned for a successful DeleteCommentMsg.
type CommentDeleted struct {
	CommentID uuid.UUID `json:"commentId"`
}

// CommentActor manages the per-post comment collections. Mutations are
// strictly author-only: unlike posts, there is no admin override.
type CommentActor struct {
	db      database.DBAdapter
	metrics *utils.MetricsCollector
}

func NewCommentActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{
		db:      db,
		metrics: metrics,
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started")

	case *actor.Stopping:
		log.Printf("CommentActor stopping")

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *GetPostCommentsMsg:
		a.handleGetPostComments(context, msg)

	case *EditCommentMsg:
		a.handleEditComment(context, msg)

	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)

	default:
		log.Printf("CommentActor: Unknown message type %T", msg)
	}
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if msg.Author.UID == uuid.Nil {
		context.Respond(utils.NewUnauthorizedError("sign in to comment"))
		return
	}
	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewValidationError("Comment content is required"))
		return
	}

	// The parent post must exist before a comment can hang off it.
	if _, err := a.db.GetPost(ctx, msg.PostID); err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get parent post", err))
		return
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		PostID:    msg.PostID,
		Content:   msg.Content,
		Author:    msg.Author,
		CreatedAt: time.Now(),
	}

	if err := a.db.SaveComment(ctx, comment); err != nil {
		context.Respond(utils.NewDatabaseError("create comment", err))
		return
	}

	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(comment)
}

// handleGetPostComments responds oldest-first. A store failure logs and
// yields an empty list.
func (a *CommentActor) handleGetPostComments(context actor.Context, msg *GetPostCommentsMsg) {
	ctx := stdctx.Background()

	comments, err := a.db.GetPostComments(ctx, msg.PostID)
	if err != nil {
		log.Printf("CommentActor: failed to list comments for post %s: %v", msg.PostID, err)
		context.Respond([]*models.Comment{})
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	context.Respond(comments)
}

func (a *CommentActor) handleEditComment(context actor.Context, msg *EditCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewValidationError("Comment content is required"))
		return
	}

	comment, err := a.db.GetComment(ctx, msg.PostID, msg.CommentID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get comment", err))
		return
	}

	if comment.Author.UID != msg.RequesterUID {
		context.Respond(utils.NewForbiddenError("only the author can edit this comment"))
		return
	}

	editedAt := time.Now()
	if err := a.db.UpdateCommentContent(ctx, msg.PostID, msg.CommentID, msg.Content, editedAt); err != nil {
		context.Respond(utils.NewDatabaseError("update comment", err))
		return
	}

	comment.Content = msg.Content
	comment.EditedAt = &editedAt

	a.metrics.AddOperationLatency("edit_comment", time.Since(startTime))
	context.Respond(comment)
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	comment, err := a.db.GetComment(ctx, msg.PostID, msg.CommentID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get comment", err))
		return
	}

	if comment.Author.UID != msg.RequesterUID {
		context.Respond(utils.NewForbiddenError("only the author can delete this comment"))
		return
	}

	if err := a.db.DeleteComment(ctx, msg.PostID, msg.CommentID); err != nil {
		context.Respond(utils.NewDatabaseError("delete comment", err))
		return
	}

	a.metrics.AddOperationLatency("delete_comment", time.Since(startTime))
	context.Respond(&CommentDeleted{CommentID: msg.CommentID})
}
