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

// Message types for Category operations
type (
	AddCategoryMsg struct {
		Name string      `json:"name"`
		Role models.Role `json:"role"`
	}

	ListCategoriesMsg struct{}

	DeleteCategoryMsg struct {
		Name string      `json:"name"`
		Role models.Role `json:"role"`
	}

	GetCategoryCountMsg struct{}
)

// CategoryCascadeResult reports both phases of a category deletion.
type CategoryCascadeResult struct {
	Name              string `json:"name"`
	PostsDeleted      int64  `json:"postsDeleted"`
	CategoriesDeleted int64  `json:"categoriesDeleted"`
}

// CategoryActor manages the flat category list. It is not the
// uniqueness authority: callers pre-check names, and two racing adds
// with the same name can both land.
type CategoryActor struct {
	db      database.DBAdapter
	metrics *utils.MetricsCollector
}

func NewCategoryActor(db database.DBAdapter, metrics *utils.MetricsCollector) actor.Actor {
	return &CategoryActor{
		db:      db,
		metrics: metrics,
	}
}

func (a *CategoryActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CategoryActor started")

	case *actor.Stopping:
		log.Printf("CategoryActor stopping")

	case *AddCategoryMsg:
		a.handleAddCategory(context, msg)

	case *ListCategoriesMsg:
		a.handleListCategories(context)

	case *DeleteCategoryMsg:
		a.handleDeleteCategory(context, msg)

	case *GetCategoryCountMsg:
		a.handleGetCount(context)

	default:
		log.Printf("CategoryActor: Unknown message type %T", msg)
	}
}

func (a *CategoryActor) handleAddCategory(context actor.Context, msg *AddCategoryMsg) {
	startTime := time.Now()

	if msg.Role != models.RoleAdmin {
		context.Respond(utils.NewForbiddenError("only the administrator can add categories"))
		return
	}

	if msg.Name == "" {
		context.Respond(utils.NewValidationError("Category name is required"))
		return
	}

	category := &models.Category{
		ID:   uuid.New(),
		Name: msg.Name,
	}

	ctx := stdctx.Background()
	if err := a.db.SaveCategory(ctx, category); err != nil {
		context.Respond(utils.NewDatabaseError("add category", err))
		return
	}

	a.metrics.AddOperationLatency("add_category", time.Since(startTime))
	context.Respond(category)
}

// handleListCategories responds with category names, unordered. On a
// store failure it logs and responds with an empty list, so callers
// cannot tell "no data" from "request failed".
func (a *CategoryActor) handleListCategories(context actor.Context) {
	ctx := stdctx.Background()

	categories, err := a.db.GetCategories(ctx)
	if err != nil {
		log.Printf("CategoryActor: failed to list categories: %v", err)
		context.Respond([]string{})
		return
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	context.Respond(names)
}

// handleDeleteCategory cascades: every post whose category field equals
// the name goes first, then every category document with the name. The
// two phases are not atomic; a crash in between leaves an orphaned
// category with no posts.
func (a *CategoryActor) handleDeleteCategory(context actor.Context, msg *DeleteCategoryMsg) {
	startTime := time.Now()

	if msg.Role != models.RoleAdmin {
		context.Respond(utils.NewForbiddenError("only the administrator can delete categories"))
		return
	}

	if msg.Name == "" {
		context.Respond(utils.NewValidationError("Category name is required"))
		return
	}

	ctx := stdctx.Background()

	postsDeleted, err := a.db.DeletePostsByCategory(ctx, msg.Name)
	if err != nil {
		context.Respond(utils.NewDatabaseError("delete category posts", err))
		return
	}

	categoriesDeleted, err := a.db.DeleteCategoriesByName(ctx, msg.Name)
	if err != nil {
		context.Respond(utils.NewDatabaseError("delete category", err))
		return
	}

	log.Printf("CategoryActor: deleted category %q (%d posts, %d documents)", msg.Name, postsDeleted, categoriesDeleted)
	a.metrics.AddOperationLatency("delete_category", time.Since(startTime))
	context.Respond(&CategoryCascadeResult{
		Name:              msg.Name,
		PostsDeleted:      postsDeleted,
		CategoriesDeleted: categoriesDeleted,
	})
}

func (a *CategoryActor) handleGetCount(context actor.Context) {
	ctx := stdctx.Background()

	categories, err := a.db.GetCategories(ctx)
	if err != nil {
		context.Respond(0)
		return
	}
	context.Respond(len(categories))
}
