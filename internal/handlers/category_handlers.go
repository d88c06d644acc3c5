package handlers

import (
	"encoding/json"
	"net/http"

	"driftwood/internal/engine/actors"
	"driftwood/internal/middleware"
)

// CategoryRequest represents a request to add or delete a category
type CategoryRequest struct {
	Name string `json:"name"`
}

// HandleCategories dispatches on method: list, add, or cascade-delete.
func (s *Server) HandleCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleListCategories(w, r)
		case http.MethodPost:
			s.handleAddCategory(w, r)
		case http.MethodDelete:
			s.handleDeleteCategory(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetCategoryActor(), &actors.ListCategoriesMsg{})
	if err != nil {
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Pre-check mirrors the client behavior: reject a name that is
	// already listed. The actor itself is not the uniqueness authority,
	// so two racing adds can still both land.
	listResult, err := s.request(s.Engine.GetCategoryActor(), &actors.ListCategoriesMsg{})
	if err == nil {
		if names, ok := listResult.([]string); ok {
			for _, name := range names {
				if name == req.Name {
					http.Error(w, "Category already exists", http.StatusConflict)
					return
				}
			}
		}
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetCategoryActor(), &actors.AddCategoryMsg{
		Name: req.Name,
		Role: claims.Role,
	})
	if err != nil {
		http.Error(w, "Failed to add category", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			name = req.Name
		}
	}
	if name == "" {
		http.Error(w, "Category name is required", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetCategoryActor(), &actors.DeleteCategoryMsg{
		Name: name,
		Role: claims.Role,
	})
	if err != nil {
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}
