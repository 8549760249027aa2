package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/idrizp/magicify-backend/pkg/catalog"
	repomemory "github.com/idrizp/magicify-backend/pkg/catalog/repo/memory"
	repopg "github.com/idrizp/magicify-backend/pkg/catalog/repo/postgres"
	fsstorage "github.com/idrizp/magicify-backend/pkg/catalog/storage/fs"
)

// ServerConfig represents server configuration for the catalog service.
//
// DATABASE_URL selects the repository: empty or "memory" uses the in-memory
// repository, a postgres:// or postgresql:// URL uses Postgres (migrations
// are applied at startup). Assets live in two directories under DataDir.
type ServerConfig struct {
	Port               string `env:"PORT" env-default:"8080"`
	Environment        string `env:"ENVIRONMENT" env-default:"development"`
	DatabaseURL        string `env:"DATABASE_URL" env-default:""`
	DataDir            string `env:"DATA_DIR" env-default:"./data"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	MaxUploadBytes     int64  `env:"MAX_UPLOAD_BYTES" env-default:"209715200"`
}

// Load reads server configuration from the environment, after loading a .env
// file when one is present.
func Load() (*ServerConfig, error) {
	_ = godotenv.Load()

	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.DataDir == "" {
		return errors.New("data directory is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be positive")
	}
	if c.DatabaseURL != "" && c.DatabaseURL != "memory" && !isPostgresURL(c.DatabaseURL) {
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", c.DatabaseURL)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// IconsDir returns the directory icon assets are stored in.
func (c *ServerConfig) IconsDir() string {
	return filepath.Join(c.DataDir, catalog.BackendIcons)
}

// ModelsDir returns the directory model assets are stored in.
func (c *ServerConfig) ModelsDir() string {
	return filepath.Join(c.DataDir, catalog.BackendModels)
}

// BuildService creates a catalog.Service instance from the server
// configuration: the selected repository plus one filesystem blob store per
// asset category.
func (c *ServerConfig) BuildService(ctx context.Context) (catalog.Service, error) {
	repo, err := c.buildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	iconStore, err := fsstorage.New(fsstorage.Config{BaseDir: c.IconsDir()})
	if err != nil {
		return nil, fmt.Errorf("failed to build icon storage: %w", err)
	}
	modelStore, err := fsstorage.New(fsstorage.Config{BaseDir: c.ModelsDir()})
	if err != nil {
		return nil, fmt.Errorf("failed to build model storage: %w", err)
	}

	return catalog.New(
		catalog.WithRepository(repo),
		catalog.WithBlobStore(catalog.BackendIcons, iconStore),
		catalog.WithBlobStore(catalog.BackendModels, modelStore),
		catalog.WithMaxUploadBytes(c.MaxUploadBytes),
	)
}

// buildRepository creates a catalog.Repository based on the configuration.
func (c *ServerConfig) buildRepository(ctx context.Context) (catalog.Repository, error) {
	if c.DatabaseURL == "" || c.DatabaseURL == "memory" {
		return repomemory.New(), nil
	}

	if err := repopg.Migrate(c.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return repopg.NewWithPool(pool), nil
}

func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
