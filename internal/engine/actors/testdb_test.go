package actors

import (
	"context"
	"sort"
	"sync"
	"time"

	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/google/uuid"
)

// memDB is an in-memory database.DBAdapter for actor tests.
type memDB struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*models.User
	profiles      map[uuid.UUID]*models.Profile
	referralCodes map[string]bool
	categories    map[uuid.UUID]*models.Category
	posts         map[uuid.UUID]*models.Post
	comments      map[uuid.UUID]*models.Comment
}

func newMemDB() *memDB {
	return &memDB{
		users:         make(map[uuid.UUID]*models.User),
		profiles:      make(map[uuid.UUID]*models.Profile),
		referralCodes: make(map[string]bool),
		categories:    make(map[uuid.UUID]*models.Category),
		posts:         make(map[uuid.UUID]*models.Post),
		comments:      make(map[uuid.UUID]*models.Comment),
	}
}

func (m *memDB) Close(ctx context.Context) error { return nil }

func (m *memDB) SaveUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	copied := *user
	return &copied, nil
}

func (m *memDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (m *memDB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	delete(m.users, id)
	return nil
}

func (m *memDB) SaveProfile(ctx context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.UID] = &copied
	return nil
}

func (m *memDB) GetProfile(ctx context.Context, uid uuid.UUID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[uid]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "Profile not found", nil)
	}
	copied := *profile
	return &copied, nil
}

func (m *memDB) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, profile := range m.profiles {
		if profile.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDB) IsNicknameTaken(ctx context.Context, nickname string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, profile := range m.profiles {
		if profile.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDB) DeleteProfile(ctx context.Context, uid uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, uid)
	return nil
}

func (m *memDB) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.referralCodes[code], nil
}

func (m *memDB) SaveReferralCode(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.referralCodes[code] = true
	return nil
}

func (m *memDB) SaveCategory(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *memDB) GetCategories(ctx context.Context) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var categories []*models.Category
	for _, category := range m.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	return categories, nil
}

func (m *memDB) DeleteCategoriesByName(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, category := range m.categories {
		if category.Name == name {
			delete(m.categories, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memDB) SavePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *memDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, utils.NewPostNotFoundError(id.String())
	}
	copied := *post
	return &copied, nil
}

func (m *memDB) GetPostsByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []*models.Post
	for _, post := range m.posts {
		if category == "" || post.Category == category {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (m *memDB) GetLatestPosts(ctx context.Context, category string, limit int) ([]*models.Post, error) {
	posts, err := m.GetPostsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *memDB) UpdatePostContent(ctx context.Context, id uuid.UUID, title, content string, editedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return utils.NewPostNotFoundError(id.String())
	}
	post.Title = title
	post.Content = content
	post.EditedAt = &editedAt
	return nil
}

func (m *memDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return utils.NewPostNotFoundError(id.String())
	}
	delete(m.posts, id)
	return nil
}

func (m *memDB) DeletePostsByCategory(ctx context.Context, category string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, post := range m.posts {
		if post.Category == category {
			delete(m.posts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *comment
	m.comments[comment.ID] = &copied
	return nil
}

func (m *memDB) GetComment(ctx context.Context, postID, commentID uuid.UUID) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.comments[commentID]
	if !ok || comment.PostID != postID {
		return nil, utils.NewCommentNotFoundError(commentID.String())
	}
	copied := *comment
	return &copied, nil
}

func (m *memDB) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *memDB) UpdateCommentContent(ctx context.Context, postID, commentID uuid.UUID, content string, editedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.comments[commentID]
	if !ok || comment.PostID != postID {
		return utils.NewCommentNotFoundError(commentID.String())
	}
	comment.Content = content
	comment.EditedAt = &editedAt
	return nil
}

func (m *memDB) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.comments[commentID]
	if !ok || comment.PostID != postID {
		return utils.NewCommentNotFoundError(commentID.String())
	}
	delete(m.comments, commentID)
	return nil
}
