package engine

import (
	"driftwood/internal/database"
	"driftwood/internal/engine/actors"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine owns the PIDs of the component actors.
type Engine struct {
	userActor     *actor.PID
	categoryActor *actor.PID
	postActor     *actor.PID
	commentActor  *actor.PID
}

// NewEngine spawns one actor per component, all sharing the same
// document-store adapter.
func NewEngine(system *actor.ActorSystem, db database.DBAdapter, metrics *utils.MetricsCollector, adminEmail string) *Engine {
	context := system.Root

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(db, metrics, adminEmail)
	})
	userPID := context.Spawn(userProps)

	categoryProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCategoryActor(db, metrics)
	})
	categoryPID := context.Spawn(categoryProps)

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(db, metrics)
	})
	postPID := context.Spawn(postProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(db, metrics)
	})
	commentPID := context.Spawn(commentProps)

	return &Engine{
		userActor:     userPID,
		categoryActor: categoryPID,
		postActor:     postPID,
		commentActor:  commentPID,
	}
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

// GetCategoryActor returns the PID of the category actor
func (e *Engine) GetCategoryActor() *actor.PID {
	return e.categoryActor
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}
