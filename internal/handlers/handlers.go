package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"driftwood/internal/engine"
	"driftwood/internal/engine/actors"
	"driftwood/internal/middleware"
	"driftwood/internal/models"
	"driftwood/internal/storage"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Auth           *middleware.JWTAuth
	Files          storage.FileStore
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	auth *middleware.JWTAuth,
	files storage.FileStore,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Auth:           auth,
		Files:          files,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// request sends a message to an actor and waits for its reply.
func (s *Server) request(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	return future.Result()
}

// sessionSnapshot builds the author snapshot embedded in new posts and
// comments from the session claims plus the stored profile nickname.
func (s *Server) sessionSnapshot(claims *middleware.Claims) models.AuthorSnapshot {
	snapshot := models.AuthorSnapshot{
		UID:   claims.UserID,
		Email: claims.Email,
	}

	result, err := s.request(s.Engine.GetUserActor(), &actors.GetProfileMsg{UID: claims.UserID})
	if err == nil {
		if profile, ok := result.(*models.Profile); ok {
			snapshot.Nickname = profile.Nickname
		}
	}

	return snapshot
}

// respond writes the actor result as JSON, translating AppErrors to
// their HTTP status.
func (s *Server) respond(w http.ResponseWriter, result interface{}) {
	if appErr, ok := result.(*utils.AppError); ok {
		s.Metrics.IncrementErrors()
		http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
