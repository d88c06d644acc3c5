package handlers

import (
	"encoding/json"
	"net/http"

	"driftwood/internal/engine/actors"
	"driftwood/internal/middleware"

	"github.com/google/uuid"
)

// CreateCommentRequest represents a request to add a comment to a post
type CreateCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// EditCommentRequest represents a request to edit a comment
type EditCommentRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
	Content   string `json:"content"`
}

// DeleteCommentRequest represents a request to delete a comment
type DeleteCommentRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
}

// HandleComment dispatches on method: create, edit, or delete a comment.
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleCreateComment(w, r)
		case http.MethodPut:
			s.handleEditComment(w, r)
		case http.MethodDelete:
			s.handleDeleteComment(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreateCommentRequest
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
	result, err := s.request(s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
		PostID:  postID,
		Content: req.Content,
		Author:  s.sessionSnapshot(claims),
	})
	if err != nil {
		http.Error(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EditCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetCommentActor(), &actors.EditCommentMsg{
		PostID:       postID,
		CommentID:    commentID,
		RequesterUID: claims.UserID,
		Content:      req.Content,
	})
	if err != nil {
		http.Error(w, "Failed to edit comment", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req DeleteCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID format", http.StatusBadRequest)
		return
	}

	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
		PostID:       postID,
		CommentID:    commentID,
		RequesterUID: claims.UserID,
	})
	if err != nil {
		http.Error(w, "Failed to delete comment", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

// HandleCommentList returns the comments for a post, oldest first.
func (s *Server) HandleCommentList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		postID, err := uuid.Parse(r.URL.Query().Get("postId"))
		if err != nil {
			http.Error(w, "Invalid post ID format", http.StatusBadRequest)
			return
		}

		s.Metrics.IncrementRequests()
		result, err := s.request(s.Engine.GetCommentActor(), &actors.GetPostCommentsMsg{PostID: postID})
		if err != nil {
			http.Error(w, "Failed to list comments", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}
