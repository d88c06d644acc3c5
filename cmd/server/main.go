package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"driftwood/internal/config"
	"driftwood/internal/database"
	"driftwood/internal/engine"
	"driftwood/internal/handlers"
	"driftwood/internal/middleware"
	"driftwood/internal/storage"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	files, err := storage.NewMinioStore(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize actor system and spawn the component actors
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, db, metrics, cfg.Auth.AdminEmail)

	auth := middleware.NewJWTAuth(cfg.Auth.JWTSecret)
	server := handlers.NewServer(system, eng, metrics, auth, files)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	// route wires a handler with CORS and JWT middleware for its path
	mux := http.NewServeMux()
	route := func(path string, handler http.HandlerFunc) {
		mux.HandleFunc(path, middleware.ApplyCORS(auth.Apply(handler, path), corsConfig))
	}

	route("/health", server.HandleHealth())
	route("/user/register", server.HandleUserRegistration())
	route("/user/login", server.HandleUserLogin())
	route("/user/profile", server.HandleUserProfile())
	route("/user/account", server.HandleAccountDeletion())
	route("/categories", server.HandleCategories())
	route("/post", server.HandlePost())
	route("/posts", server.HandlePostList())
	route("/posts/latest", server.HandleLatestPosts())
	route("/comment", server.HandleComment())
	route("/comments", server.HandleCommentList())
	route("/files/upload", server.HandleFileUpload())

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
