package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"people-service/internal/config"
	"people-service/internal/domains/person"
	"people-service/internal/infrastructure/database"
)

// Open connects to the store named by cfg.URL and returns its Repository.
//
// Supported schemes:
//
//	postgres:// postgresql://  - jsonb documents in Postgres
//	sqlite:// file:            - json1 documents in SQLite
//	memory://                  - in-process (ephemeral, for development and tests)
//
// Any failure to reach the store is reported as person.ErrConnection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (person.Repository, error) {
	driver, err := cfg.Driver()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", person.ErrConnection, err)
	}

	switch driver {
	case config.DriverMemory:
		log.Warn().Msg("[DATABASE] Using in-memory store, data is lost on restart")
		return NewMemoryRepository(), nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", person.ErrConnection, err)
		}
		repo, err := NewSQLiteRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", person.ErrConnection, err)
		}
		return repo, nil

	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", person.ErrConnection, err)
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", person.ErrConnection, err)
		}
		if err := EnsureSchema(ctx, db.Pool); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", person.ErrConnection, err)
		}
		return NewPostgresRepository(db), nil

	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", person.ErrConnection, driver)
	}
}
