package actors

import (
	"testing"
	"time"

	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func spawnCategoryActor(t *testing.T, db *memDB) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCategoryActor(db, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props)
}

func TestCategoryAddAndList(t *testing.T) {
	db := newMemDB()
	system, pid := spawnCategoryActor(t, db)

	// Step 1: Members cannot add categories
	memberFuture := system.Root.RequestFuture(pid, &AddCategoryMsg{
		Name: "News",
		Role: models.RoleMember,
	}, 5*time.Second)
	memberResult, err := memberFuture.Result()
	if err != nil {
		t.Fatalf("Member add request failed: %v", err)
	}
	appErr, ok := memberResult.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected error, got %T", memberResult)
	}
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
	assert.Empty(t, db.categories)

	// Step 2: The administrator can
	adminFuture := system.Root.RequestFuture(pid, &AddCategoryMsg{
		Name: "News",
		Role: models.RoleAdmin,
	}, 5*time.Second)
	adminResult, err := adminFuture.Result()
	if err != nil {
		t.Fatalf("Admin add request failed: %v", err)
	}
	category, ok := adminResult.(*models.Category)
	if !ok {
		t.Fatalf("Expected category, got %T: %v", adminResult, adminResult)
	}
	assert.Equal(t, "News", category.Name)
	assert.NotEqual(t, uuid.Nil, category.ID)

	// Step 3: The list is public and returns names
	listFuture := system.Root.RequestFuture(pid, &ListCategoriesMsg{}, 5*time.Second)
	listResult, err := listFuture.Result()
	if err != nil {
		t.Fatalf("List request failed: %v", err)
	}
	names, ok := listResult.([]string)
	if !ok {
		t.Fatalf("Expected name list, got %T", listResult)
	}
	assert.Equal(t, []string{"News"}, names)
}

func TestCategoryDeleteCascadesToPosts(t *testing.T) {
	db := newMemDB()
	system, pid := spawnCategoryActor(t, db)
	postProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPostActor(db, utils.NewMetricsCollector())
	})
	postPID := system.Root.Spawn(postProps)

	author := models.AuthorSnapshot{
		UID:      uuid.New(),
		Nickname: "gator",
		Email:    "gator@example.com",
	}

	// Step 1: Admin creates the category and two posts in it
	addFuture := system.Root.RequestFuture(pid, &AddCategoryMsg{
		Name: "News",
		Role: models.RoleAdmin,
	}, 5*time.Second)
	if _, err := addFuture.Result(); err != nil {
		t.Fatalf("Add category failed: %v", err)
	}

	for _, title := range []string{"First", "Second"} {
		postFuture := system.Root.RequestFuture(postPID, &CreatePostMsg{
			Title:    title,
			Content:  "content",
			Category: "News",
			Author:   author,
		}, 5*time.Second)
		result, err := postFuture.Result()
		if err != nil {
			t.Fatalf("Create post %q failed: %v", title, err)
		}
		if _, ok := result.(*models.Post); !ok {
			t.Fatalf("Expected post, got %T: %v", result, result)
		}
	}

	// A post in another category must survive the cascade
	otherFuture := system.Root.RequestFuture(postPID, &CreatePostMsg{
		Title:    "Elsewhere",
		Content:  "content",
		Category: "Random",
		Author:   author,
	}, 5*time.Second)
	if _, err := otherFuture.Result(); err != nil {
		t.Fatalf("Create unrelated post failed: %v", err)
	}

	// Step 2: Deleting the category removes its posts too
	delFuture := system.Root.RequestFuture(pid, &DeleteCategoryMsg{
		Name: "News",
		Role: models.RoleAdmin,
	}, 5*time.Second)
	delResult, err := delFuture.Result()
	if err != nil {
		t.Fatalf("Delete category failed: %v", err)
	}
	cascade, ok := delResult.(*CategoryCascadeResult)
	if !ok {
		t.Fatalf("Expected cascade result, got %T: %v", delResult, delResult)
	}
	assert.Equal(t, int64(2), cascade.PostsDeleted)
	assert.Equal(t, int64(1), cascade.CategoriesDeleted)

	// Step 3: Only the unrelated post remains
	postsFuture := system.Root.RequestFuture(postPID, &GetPostsByCategoryMsg{}, 5*time.Second)
	postsResult, err := postsFuture.Result()
	if err != nil {
		t.Fatalf("List posts failed: %v", err)
	}
	posts := postsResult.([]*models.Post)
	assert.Len(t, posts, 1)
	assert.Equal(t, "Elsewhere", posts[0].Title)

	listFuture := system.Root.RequestFuture(pid, &ListCategoriesMsg{}, 5*time.Second)
	listResult, err := listFuture.Result()
	if err != nil {
		t.Fatalf("List categories failed: %v", err)
	}
	assert.Empty(t, listResult.([]string))
}

func TestCategoryDeleteRequiresAdmin(t *testing.T) {
	db := newMemDB()
	system, pid := spawnCategoryActor(t, db)

	addFuture := system.Root.RequestFuture(pid, &AddCategoryMsg{
		Name: "News",
		Role: models.RoleAdmin,
	}, 5*time.Second)
	if _, err := addFuture.Result(); err != nil {
		t.Fatalf("Add category failed: %v", err)
	}

	delFuture := system.Root.RequestFuture(pid, &DeleteCategoryMsg{
		Name: "News",
		Role: models.RoleMember,
	}, 5*time.Second)
	delResult, err := delFuture.Result()
	if err != nil {
		t.Fatalf("Delete request failed: %v", err)
	}
	appErr, ok := delResult.(*utils.AppError)
	if !ok {
		t.Fatalf("Expected error, got %T", delResult)
	}
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
	assert.Len(t, db.categories, 1)
}
