package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"driftwood/internal/engine/actors"
	"driftwood/internal/middleware"
)

// RegisterUserRequest represents a request to sign up a new user
type RegisterUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Nickname     string `json:"nickname"`
	ReferralCode string `json:"referralCode"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a response to a login request
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	Error    string `json:"error,omitempty"`
	UserID   string `json:"userId,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Role     string `json:"role,omitempty"`
}

// HandleUserRegistration handles sign-up requests. The referral and
// uniqueness checks run inside the user actor before any account is
// created.
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		s.Metrics.IncrementRequests()
		result, err := s.request(s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			Email:        req.Email,
			Password:     req.Password,
			Nickname:     req.Nickname,
			ReferralCode: req.ReferralCode,
		})
		if err != nil {
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}

// HandleUserLogin handles requests to log in a user
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		s.Metrics.IncrementRequests()
		result, err := s.request(s.Engine.GetUserActor(), &actors.LoginMsg{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			log.Printf("HTTP Handler: Error getting login result: %v", err)
			http.Error(w, "Failed to process login", http.StatusInternalServerError)
			return
		}

		loginResult, ok := result.(*actors.LoginResult)
		if !ok {
			log.Printf("HTTP Handler: Invalid response type: %T", result)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		resp := &LoginResponse{Success: loginResult.Success, Error: loginResult.Error}

		// Only generate a token if login was successful
		if loginResult.Success {
			token, err := s.Auth.GenerateToken(loginResult.UserID, loginResult.Email, loginResult.Role)
			if err != nil {
				log.Printf("HTTP Handler: Failed to generate token: %v", err)
				http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
				return
			}

			resp.Token = token
			resp.UserID = loginResult.UserID.String()
			resp.Nickname = loginResult.Nickname
			resp.Role = string(loginResult.Role)
		} else {
			w.WriteHeader(http.StatusUnauthorized)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// UpdateNicknameRequest represents a request to rename the session user
type UpdateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

// HandleUserProfile dispatches on method: fetch or rename the session
// user's profile.
func (s *Server) HandleUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleGetProfile(w, r)
		case http.MethodPut:
			s.handleUpdateNickname(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleGetProfile returns the mirrored profile document for the
// active session.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetUserActor(), &actors.GetProfileMsg{UID: userID})
	if err != nil {
		http.Error(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

// handleUpdateNickname renames the session user. Posts and comments
// keep the author snapshot taken at their creation; only the profile
// and credential record change.
func (s *Server) handleUpdateNickname(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req UpdateNicknameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementRequests()
	result, err := s.request(s.Engine.GetUserActor(), &actors.UpdateNicknameMsg{
		UID:      userID,
		Nickname: req.Nickname,
	})
	if err != nil {
		http.Error(w, "Failed to update nickname", http.StatusInternalServerError)
		return
	}

	s.respond(w, result)
}

// HandleAccountDeletion deletes the active session's profile document
// and credential record. Confirmation is the client's concern; the
// request itself is the confirmation here.
func (s *Server) HandleAccountDeletion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		s.Metrics.IncrementRequests()
		result, err := s.request(s.Engine.GetUserActor(), &actors.DeleteAccountMsg{UID: userID})
		if err != nil {
			http.Error(w, "Failed to delete account", http.StatusInternalServerError)
			return
		}

		s.respond(w, result)
	}
}
