package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"todo-store/internal/repository"
	"todo-store/internal/repository/bolt"
	"todo-store/internal/repository/sqlite"
	"todo-store/internal/services"
)

// CreateRepository opens the store selected by config.Database.Backend
func CreateRepository(config *Config, logger *zap.Logger) (repository.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dbPath := config.GetDatabasePath()

	switch config.Database.Backend {
	case BackendBolt:
		store, err := bolt.Open(dbPath,
			bolt.WithBucket(config.Database.Bucket),
			bolt.WithQueryTimeout(config.GetQueryTimeout()),
			bolt.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	default:
		repo, err := sqlite.New(dbPath,
			sqlite.WithQueryTimeout(config.GetQueryTimeout()),
			sqlite.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}

// WindowSource maps config.Query.Window to the service window source
func WindowSource(config *Config) services.WindowSource {
	if config.Query.Window == WindowDay {
		return services.DayWindowSource(nil)
	}
	return services.StaticWindow()
}
