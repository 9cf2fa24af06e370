// Package storage builds the transaction store selected by DATA_BACKEND.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	"github.com/Gabriel4210/DRE/internal/platform/config"
	"github.com/Gabriel4210/DRE/internal/repositories/csvstore"
	"github.com/Gabriel4210/DRE/internal/repositories/database/pgsql"
	"github.com/Gabriel4210/DRE/internal/repositories/database/sqlite"
	"github.com/Gabriel4210/DRE/pkg/database"
)

// Store is an opened, initialized transaction store.
type Store struct {
	Repos   portsrepo.RepositoryProvider
	Backend string
	// Location is the file path or database URL host the store reads from.
	Location string
	closeFn  func() error
}

// Close releases whatever the backend holds open.
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Open builds the configured backend and runs its Initialize step, which creates
// an empty store if none exists and leaves existing data untouched.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	store, err := build(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.Repos.TransactionRepo.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize %s transaction store: %w", store.Backend, err)
	}

	slog.Info("Transaction store ready",
		slog.String("backend", store.Backend),
		slog.String("location", store.Location))
	return store, nil
}

func build(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DataBackend {
	case config.BackendCSV:
		return &Store{
			Repos:    portsrepo.RepositoryProvider{TransactionRepo: csvstore.NewTransactionRepository(cfg.DataPath)},
			Backend:  cfg.DataBackend,
			Location: cfg.DataPath,
		}, nil

	case config.BackendSQLite:
		repo, err := sqlite.NewSQLiteTransactionRepository(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &Store{
			Repos:    portsrepo.RepositoryProvider{TransactionRepo: repo},
			Backend:  cfg.DataBackend,
			Location: cfg.SQLitePath,
			closeFn:  repo.Close,
		}, nil

	case config.BackendPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return &Store{
			Repos:    pgsql.NewRepositoryProvider(pool, cfg.DatabaseURL),
			Backend:  cfg.DataBackend,
			Location: pool.Config().ConnConfig.Host,
			closeFn: func() error {
				database.ClosePgxPool(pool)
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
}
