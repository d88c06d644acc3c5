package handlers

import (
	"encoding/json"
	"net/http"

	"driftwood/internal/engine/actors"
)

// HealthResponse summarizes entity counts and server metrics.
type HealthResponse struct {
	Status        string `json:"status"`
	Categories    int    `json:"categories"`
	Posts         int    `json:"posts"`
	Requests      uint64 `json:"requests"`
	Errors        uint64 `json:"errors"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// HandleHealth reports basic liveness plus entity counts.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		categoryCount := 0
		if result, err := s.request(s.Engine.GetCategoryActor(), &actors.GetCategoryCountMsg{}); err == nil {
			if count, ok := result.(int); ok {
				categoryCount = count
			}
		}

		postCount := 0
		if result, err := s.request(s.Engine.GetPostActor(), &actors.GetPostCountMsg{}); err == nil {
			if count, ok := result.(int); ok {
				postCount = count
			}
		}

		requests, errors, uptime := s.Metrics.Snapshot()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&HealthResponse{
			Status:        "ok",
			Categories:    categoryCount,
			Posts:         postCount,
			Requests:      requests,
			Errors:        errors,
			UptimeSeconds: int64(uptime.Seconds()),
		})
	}
}
