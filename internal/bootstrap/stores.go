package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DigSite_Go/internal/config"
	"github.com/osse101/DigSite_Go/internal/database"
	"github.com/osse101/DigSite_Go/internal/pity"
	"github.com/osse101/DigSite_Go/internal/progress"
	"github.com/osse101/DigSite_Go/migrations"
)

// Stores holds the persistence used by the dig services. DB is nil with
// in-memory storage.
type Stores struct {
	Progress progress.Store
	Pity     pity.Repository
	DB       *pgxpool.Pool
}

// DBPool returns the pool for readiness checks, or nil with in-memory storage
func (s *Stores) DBPool() database.Pool {
	if s.DB == nil {
		return nil
	}
	return s.DB
}

// Close releases the database pool if one was opened
func (s *Stores) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// InitializeStores opens the configured storage backend. With PostgreSQL the
// embedded migrations are applied before the stores are returned.
func InitializeStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.Storage != config.StoragePostgres {
		slog.Warn(LogMsgUsingMemoryStorage)
		return &Stores{
			Progress: progress.NewMemoryStore(),
			Pity:     pity.NewMemoryRepository(),
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MaxIdle:  cfg.DBMaxIdle,
		MaxLife:  cfg.DBMaxLife,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgUsingPostgresStores, "host", cfg.DBHost, "db", cfg.DBName)
	return &Stores{
		Progress: progress.NewPostgresStore(pool),
		Pity:     pity.NewPostgresRepository(pool),
		DB:       pool,
	}, nil
}
