package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "driftwood", cfg.Database.Name)
	assert.Equal(t, "attachments", cfg.Storage.Bucket)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")
	t.Setenv("DB_NAME", "blog")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("MINIO_ENDPOINT", "files.internal:9000")
	t.Setenv("MINIO_BUCKET", "blog-files")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Database.URI)
	assert.Equal(t, "blog", cfg.Database.Name)
	assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "files.internal:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "blog-files", cfg.Storage.Bucket)
	assert.True(t, cfg.Storage.UseSSL)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigIgnoresBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	assert.Equal(t, 8080, cfg.Server.Port)
}
