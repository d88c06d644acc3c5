package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"driftwood/internal/engine/actors"
	"driftwood/internal/middleware"
	"driftwood/internal/models"

	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a post
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	FileURL  string `json:"fileUrl,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

// EditPostRequest represents a request to edit a post's title/content
type EditPostRequest struct {
	PostID  string `json:"postId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandlePost dispatches on method: create, fetch, edit, or delete a
// single post.
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleCreatePost(w, r)
		case http.MethodGet:
			s.handleGetPost(w, r)
		case http.MethodPut:
			s.handleEditPost(w, r)
		case http.MethodDelete:
			s.handleDeletePost(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetPostActor(), &actors.CreatePostMsg{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		FileURL:  req.FileURL,
		FileName: req.FileName,
		Author:   s.sessionSnapshot(claims),
	})
	if err != nil {
		http.Error(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetPostActor(), &actors.GetPostMsg{PostID: postID})
	if err != nil {
		http.Error(w, "Failed to get post", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetPostActor(), &actors.EditPostMsg{
		PostID:    postID,
		Title:     req.Title,
		Content:   req.Content,
		EditorUID: claims.UserID,
	})
	if err != nil {
		http.Error(w, "Failed to edit post", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	postID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetPostActor(), &actors.DeletePostMsg{
		PostID:       postID,
		RequesterUID: claims.UserID,
		IsAdmin:      claims.Role == models.RoleAdmin,
	})
	if err != nil {
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

// HandlePostList returns posts filtered by category; an empty category
// returns every post.
func (s *Server) HandlePostList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.Metrics.IncrementRequests()
		result, err := s.request(s.Engine.GetPostActor(), &actors.GetPostsByCategoryMsg{
			Category: r.URL.Query().Get("category"),
		})
		if err != nil {
			http.Error(w, "Failed to list posts", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}

// HandleLatestPosts returns recency-ordered posts, optionally filtered
// by category and capped.
func (s *Server) HandleLatestPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil {
				limit = parsed
			}
		}

		s.Metrics.IncrementRequests()
		result, err := s.request(s.Engine.GetPostActor(), &actors.GetLatestPostsMsg{
			Category: r.URL.Query().Get("category"),
			Limit:    limit,
		})
		if err != nil {
			http.Error(w, "Failed to list latest posts", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}
